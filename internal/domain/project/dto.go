package project

type CreateProjectDTO struct {
	Identifier string `json:"projectIdentifier" binding:"required,max=64" example:"proj-001"`
	Name       string `json:"name" binding:"required,max=200" example:"Domaine des Cedres"`
}

type CreateLotDTO struct {
	Civic string `json:"civic" binding:"max=200" example:"12 rue des Pins"`
}

type SetAssigneesDTO struct {
	UserIDs []string `json:"userIds" binding:"required"`
}
