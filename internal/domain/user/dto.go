package user

type CreateUserInput struct {
	Email     string  `json:"email" binding:"required,email" example:"jane@example.com"`
	Password  string  `json:"password" binding:"required,min=6" example:"password123"`
	FirstName string  `json:"firstName" binding:"required,max=100" example:"Jane"`
	LastName  string  `json:"lastName" binding:"max=100" example:"Doe"`
	Role      Role    `json:"role" binding:"required,oneof=OWNER SALESPERSON CUSTOMER" example:"CUSTOMER"`
	Subject   *string `json:"subject,omitempty" example:"auth0|64f1c2"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserDTO struct {
	ID        string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

func ToDTO(u User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
