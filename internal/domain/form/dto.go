package form

type CreateFormDTO struct {
	FormType          FormType               `json:"formType" binding:"required"`
	ProjectIdentifier string                 `json:"projectIdentifier" binding:"required"`
	LotIdentifier     string                 `json:"lotIdentifier" binding:"required"`
	CustomerID        string                 `json:"customerId" binding:"required"`
	FormTitle         string                 `json:"formTitle"`
	Instructions      string                 `json:"instructions"`
	FormData          map[string]interface{} `json:"formData"`
}

type UpdateFormDataDTO struct {
	FormData        map[string]interface{} `json:"formData"`
	SubmissionNotes string                 `json:"submissionNotes"`
	IsSubmitting    bool                   `json:"isSubmitting"`
}

type ReopenFormDTO struct {
	ReopenReason    string  `json:"reopenReason" binding:"required"`
	NewInstructions *string `json:"newInstructions"`
}

// UpdateFormDetailsDTO only carries the mutable details. Other fields sent by
// clients are ignored.
type UpdateFormDetailsDTO struct {
	FormTitle    *string `json:"formTitle"`
	Instructions *string `json:"instructions"`
}

type ListFormsQuery struct {
	ProjectID  string     `form:"projectId"`
	CustomerID string     `form:"customerId"`
	Status     FormStatus `form:"status"`
	FormType   FormType   `form:"formType"`
	All        bool       `form:"all"`
}

type StatusCount struct {
	Status FormStatus `json:"status"`
	Count  int64      `json:"count"`
}
