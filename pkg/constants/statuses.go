package constants

// UserStatus — статус учётной записи. Вход разрешён только для ACTIVE.
type UserStatus string

const (
	UserStatusActive     UserStatus = "ACTIVE"
	UserStatusInactive   UserStatus = "INACTIVE"
	UserStatusSuspended  UserStatus = "SUSPENDED"
	UserStatusTerminated UserStatus = "TERMINATED"
)

func (s UserStatus) String() string {
	return string(s)
}

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended, UserStatusTerminated:
		return true
	}
	return false
}

// FicheEtat — жизненный цикл оценочной фиши. Переходы draft → in_progress →
// completed ведёт внешний модуль самооценки; здесь состояние только читается.
type FicheEtat string

const (
	FicheEtatDraft      FicheEtat = "draft"
	FicheEtatInProgress FicheEtat = "in_progress"
	FicheEtatCompleted  FicheEtat = "completed"
	FicheEtatValidated  FicheEtat = "validated"
)

func (e FicheEtat) String() string {
	return string(e)
}

// PendingFicheEtats — состояния фиши, которые дашборд менеджера считает
// ожидающими оценки.
var PendingFicheEtats = []FicheEtat{FicheEtatDraft, FicheEtatInProgress}

// CompetenceEtat — жизненный цикл компетенции. validated — терминальное
// состояние: повторная оценка отклоняется.
type CompetenceEtat string

const (
	CompetenceEtatDraft     CompetenceEtat = "draft"
	CompetenceEtatSubmitted CompetenceEtat = "submitted"
	CompetenceEtatValidated CompetenceEtat = "validated"
)

func (e CompetenceEtat) String() string {
	return string(e)
}
