package dto

// ImportErrorDTO — ошибка одной строки импорта. Line 1-индексирован по
// файлу, с учётом строки заголовка.
type ImportErrorDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Raw    string `json:"raw"`
}

// ImportResultDTO — итог импорта: операция в целом всегда успешна,
// неудачные строки накапливаются в Errors.
type ImportResultDTO struct {
	Message      string           `json:"message"`
	CreatedCount int              `json:"createdCount"`
	ErrorCount   int              `json:"errorCount"`
	Created      []UserDTO        `json:"created"`
	Errors       []ImportErrorDTO `json:"errors"`
}
