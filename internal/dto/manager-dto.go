package dto

type ConfirmParticipantsDTO struct {
	ConfirmedEmployeeIDs []string `json:"confirmedEmployeeIds" validate:"required,dive,uuid4"`
	RejectedEmployeeIDs  []string `json:"rejectedEmployeeIds" validate:"required,dive,uuid4"`
}

type AddEmployeeDTO struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid4"`
	Score      *int   `json:"score" validate:"omitempty,min=0,max=100"`
}

type EvaluateCompetenceDTO struct {
	CompetenceID   string  `json:"competenceId" validate:"required,uuid4"`
	HierarchieEval *int    `json:"hierarchie_eval" validate:"required,min=0,max=10"`
	Commentaire    *string `json:"commentaire" validate:"omitempty,max=1000"`
}

// ShortUserDTO — сокращённая ссылка на пользователя в ответах фасада.
type ShortUserDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Matricule string `json:"matricule"`
	Email     string `json:"email,omitempty"`
}

type ManagerDepartmentDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type MyActivitiesDTO struct {
	Department *ManagerDepartmentDTO `json:"department"`
	Activities []ActivityDTO         `json:"activities"`
	Total      int                   `json:"total"`
}

type MyEmployeesDTO struct {
	Department string    `json:"department,omitempty"`
	Employees  []UserDTO `json:"employees"`
	Total      int       `json:"total"`
}

type EmployeeSearchResultDTO struct {
	Employees []EmployeeSearchDTO `json:"employees"`
	Total     int                 `json:"total"`
}

type ConfirmParticipantsResultDTO struct {
	Message              string   `json:"message"`
	ActivityID           string   `json:"activityId"`
	ConfirmedCount       int      `json:"confirmedCount"`
	RejectedCount        int      `json:"rejectedCount"`
	ConfirmedEmployeeIDs []string `json:"confirmedEmployeeIds"`
	RejectedEmployeeIDs  []string `json:"rejectedEmployeeIds"`
}

type AddEmployeeResultDTO struct {
	Message  string       `json:"message"`
	Employee ShortUserDTO `json:"employee"`
	Activity struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"activity"`
	Score int `json:"score"`
}

type EmployeeFichesDTO struct {
	Employee ShortUserDTO `json:"employee"`
	Fiches   []FicheDTO   `json:"fiches"`
	Total    int          `json:"total"`
}

type FicheDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Saisons   string `json:"saisons"`
	Etat      string `json:"etat"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type QuestionCompetenceDTO struct {
	Intitule string `json:"intitule"`
	Details  string `json:"details"`
}

type CompetenceDTO struct {
	ID             string                 `json:"id"`
	FicheID        string                 `json:"fiches_id"`
	Type           string                 `json:"type"`
	Intitule       string                 `json:"intitule"`
	AutoEval       *int                   `json:"auto_eval"`
	HierarchieEval *int                   `json:"hierarchie_eval"`
	Etat           string                 `json:"etat"`
	Question       *QuestionCompetenceDTO `json:"question_competence,omitempty"`
}

type FicheCompetencesDTO struct {
	Fiche       FicheDTO        `json:"fiche"`
	Competences []CompetenceDTO `json:"competences"`
	Total       int             `json:"total"`
}

type EvaluateCompetenceResultDTO struct {
	Message     string        `json:"message"`
	Competence  CompetenceDTO `json:"competence"`
	Commentaire *string       `json:"commentaire,omitempty"`
}

type DashboardStatsDTO struct {
	TotalEmployees     uint64 `json:"totalEmployees"`
	TotalActivities    uint64 `json:"totalActivities"`
	PendingEvaluations uint64 `json:"pendingEvaluations"`
}

type ManagerDashboardDTO struct {
	Manager    ShortUserDTO          `json:"manager"`
	Department *ManagerDepartmentDTO `json:"department"`
	Stats      DashboardStatsDTO     `json:"stats"`
}
