package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/internal/repositories"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ImportServiceInterface interface {
	ImportUsers(ctx context.Context, filename string, data []byte) (*dto.ImportResultDTO, error)
}

type ImportService struct {
	userRepo       repositories.UserRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewImportService(
	userRepo repositories.UserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	logger *zap.Logger,
) ImportServiceInterface {
	return &ImportService{userRepo: userRepo, departmentRepo: departmentRepo, logger: logger}
}

// importRow — разобранная строка файла до валидации.
type importRow struct {
	line   int
	raw    string
	fields map[string]string
}

// ImportUsers — массовый импорт пользователей из CSV или XLSX. Операция в
// целом всегда завершается успешно: неудачные строки накапливаются в
// Errors с номером строки файла, остальные создаются.
func (s *ImportService) ImportUsers(ctx context.Context, filename string, data []byte) (*dto.ImportResultDTO, error) {
	if len(data) == 0 {
		return nil, apperrors.NewBadRequestError("файл импорта пуст")
	}

	var rows []importRow
	var malformed []dto.ImportErrorDTO
	var err error
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		rows, malformed, err = s.parseXLSX(data)
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		rows, malformed, err = s.parseCSV(data)
	default:
		return nil, apperrors.NewBadRequestError("поддерживаются только файлы .csv и .xlsx")
	}
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{
		Created: make([]dto.UserDTO, 0, len(rows)),
		Errors:  make([]dto.ImportErrorDTO, 0, len(malformed)),
	}
	result.Errors = append(result.Errors, malformed...)

	for _, row := range rows {
		created, rowErr := s.createFromRow(ctx, row)
		if rowErr != nil {
			result.Errors = append(result.Errors, dto.ImportErrorDTO{
				Line:   row.line,
				Reason: rowErr.Error(),
				Raw:    row.raw,
			})
			continue
		}
		result.Created = append(result.Created, userToDTO(created))
	}

	result.CreatedCount = len(result.Created)
	result.ErrorCount = len(result.Errors)
	result.Message = fmt.Sprintf("Импорт завершён: создано %d, ошибок %d", result.CreatedCount, result.ErrorCount)

	s.logger.Info("Импорт пользователей завершён",
		zap.String("file", filename),
		zap.Int("created", result.CreatedCount),
		zap.Int("errors", result.ErrorCount),
	)
	return result, nil
}

// detectDelimiter выбирает разделитель по первой строке файла: чего больше,
// то и разделитель. При равенстве побеждает запятая.
func detectDelimiter(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}
	if bytes.Count(firstLine, []byte{';'}) > bytes.Count(firstLine, []byte{','}) {
		return ';'
	}
	return ','
}

// requiredImportColumns — колонки, без которых файл не принимается целиком.
var requiredImportColumns = []string{"name", "matricule", "telephone", "email", "date_embauche"}

func (s *ImportService) parseCSV(data []byte) ([]importRow, []dto.ImportErrorDTO, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("не удалось разобрать CSV: " + err.Error())
	}
	return buildRows(records)
}

func (s *ImportService) parseXLSX(data []byte) ([]importRow, []dto.ImportErrorDTO, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("не удалось открыть XLSX: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperrors.NewBadRequestError("в файле нет листов")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError("не удалось прочитать лист: " + err.Error())
	}
	// excelize обрезает пустые хвостовые ячейки, добиваем строки до
	// ширины заголовка.
	if len(records) > 0 {
		width := len(records[0])
		for i := 1; i < len(records); i++ {
			for len(records[i]) < width {
				records[i] = append(records[i], "")
			}
		}
	}
	return buildRows(records)
}

// buildRows сопоставляет заголовок с данными. Номера строк 1-индексированы
// по файлу, с учётом строки заголовка. Строки с неверным числом колонок не
// создаются, а попадают в пострадавшие с номером строки.
func buildRows(records [][]string) ([]importRow, []dto.ImportErrorDTO, error) {
	if len(records) < 2 {
		return nil, nil, apperrors.NewBadRequestError("файл не содержит строк данных")
	}

	header := make([]string, 0, len(records[0]))
	for _, col := range records[0] {
		header = append(header, strings.ToLower(strings.TrimSpace(col)))
	}
	for _, required := range requiredImportColumns {
		found := false
		for _, col := range header {
			if col == required {
				found = true
				break
			}
		}
		if !found {
			return nil, nil, apperrors.NewBadRequestError("отсутствует обязательная колонка: " + required)
		}
	}

	rows := make([]importRow, 0, len(records)-1)
	var malformed []dto.ImportErrorDTO
	for i := 1; i < len(records); i++ {
		record := records[i]
		if isEmptyRecord(record) {
			continue
		}
		if len(record) != len(header) {
			malformed = append(malformed, dto.ImportErrorDTO{
				Line:   i + 1,
				Reason: "неверное число колонок",
				Raw:    strings.Join(record, ";"),
			})
			continue
		}
		fields := make(map[string]string, len(header))
		for j, col := range header {
			fields[col] = strings.TrimSpace(record[j])
		}
		rows = append(rows, importRow{
			line:   i + 1,
			raw:    strings.Join(record, ";"),
			fields: fields,
		})
	}
	return rows, malformed, nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func (s *ImportService) createFromRow(ctx context.Context, row importRow) (*entities.User, error) {
	name := row.fields["name"]
	matricule := row.fields["matricule"]
	telephone := row.fields["telephone"]
	email := normalizeEmail(row.fields["email"])

	if name == "" {
		return nil, fmt.Errorf("отсутствует обязательное поле name")
	}
	if matricule == "" {
		return nil, fmt.Errorf("отсутствует обязательное поле matricule")
	}
	if telephone == "" {
		return nil, fmt.Errorf("отсутствует обязательное поле telephone")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("некорректный email: %q", row.fields["email"])
	}

	// Отсутствующий или слишком короткий пароль заменяется дефолтным.
	password := row.fields["password"]
	if len(password) < constants.MinImportPasswordLen {
		password = constants.DefaultImportPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rawDate := row.fields["date_embauche"]
	if rawDate == "" {
		return nil, fmt.Errorf("отсутствует обязательное поле date_embauche")
	}
	dateEmbauche, err := parseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("некорректная дата date_embauche: %q", rawDate)
	}

	entity := &entities.User{
		Name:         name,
		Matricule:    matricule,
		Telephone:    telephone,
		Email:        email,
		Password:     string(hashed),
		DateEmbauche: dateEmbauche,
		Status:       constants.UserStatusActive,
		Role:         constants.RoleEmployee,
		EnLigne:      false,
	}
	if raw := row.fields["role"]; raw != "" {
		role := constants.Role(strings.ToUpper(raw))
		if !role.IsValid() {
			return nil, fmt.Errorf("неизвестная роль: %q", raw)
		}
		entity.Role = role
	}
	if raw := row.fields["status"]; raw != "" {
		status := constants.UserStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			return nil, fmt.Errorf("неизвестный статус: %q", raw)
		}
		entity.Status = status
	}
	if raw := row.fields["department_id"]; raw != "" {
		deptID, err := parseID(raw)
		if err != nil {
			return nil, fmt.Errorf("некорректный department_id: %q", raw)
		}
		if _, err := s.departmentRepo.FindDepartment(ctx, deptID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("департамент не найден: %q", raw)
			}
			return nil, err
		}
		entity.DepartmentID = &deptID
	}
	if raw := row.fields["manager_id"]; raw != "" {
		managerID, err := parseID(raw)
		if err != nil {
			return nil, fmt.Errorf("некорректный manager_id: %q", raw)
		}
		if _, err := s.userRepo.FindUser(ctx, managerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("руководитель не найден: %q", raw)
			}
			return nil, err
		}
		entity.ManagerID = &managerID
	}

	return s.userRepo.CreateUser(ctx, entity)
}
