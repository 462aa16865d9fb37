package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sonumahanty/Swiss-Re/internal/logging"
	"github.com/sonumahanty/Swiss-Re/internal/models"
)

// Header is the required first row of a roster file
const Header = "Id,firstName,lastName,salary,managerId"

const fieldCount = 5

const utf8BOM = "\ufeff"

// Reader parses roster CSV input into validated employees
type Reader struct {
	logger       *logging.Logger
	strictHeader bool
}

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithLenientHeader accepts the header row regardless of letter case
func WithLenientHeader() ReaderOption {
	return func(r *Reader) {
		r.strictHeader = false
	}
}

// WithLogger sets the logger used by the reader
func WithLogger(logger *logging.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader creates a reader that requires the exact header row
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		logger:       logging.GetLogger("roster"),
		strictHeader: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile reads and validates the roster stored at path
func (r *Reader) ReadFile(path string) ([]models.Employee, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	// #nosec G304 -- the roster path is supplied by the operator
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	r.logger.Debug("Opened roster: %s (size: %d bytes)", path, info.Size())

	employees, err := r.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return employees, nil
}

// Read parses roster CSV from in and validates the result with Validate
func (r *Reader) Read(in io.Reader) ([]models.Employee, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var employees []models.Employee
	headerSeen := false

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, models.NewLineValidationError(parseErr.Line, "malformed CSV: %v", parseErr.Err)
			}
			return nil, fmt.Errorf("failed to read roster: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		if !headerSeen {
			headerSeen = true
			if err := r.checkHeader(record, line); err != nil {
				return nil, err
			}
			continue
		}

		e, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	if len(employees) == 0 {
		return nil, models.NewValidationError("No employee data found in CSV file")
	}

	if err := Validate(employees); err != nil {
		return nil, err
	}

	r.logger.InfoWithFields("Roster loaded", logging.Field("employees", len(employees)))
	return employees, nil
}

func (r *Reader) checkHeader(record []string, line int) error {
	fields := make([]string, len(record))
	for i, f := range record {
		fields[i] = strings.TrimSpace(f)
	}
	fields[0] = strings.TrimPrefix(fields[0], utf8BOM)
	found := strings.Join(fields, ",")

	if found == Header || (!r.strictHeader && strings.EqualFold(found, Header)) {
		return nil
	}
	return models.NewLineValidationError(line, "Invalid CSV header. Expected: '%s', Found: '%s'", Header, found)
}

// parseRecord turns one data row into an Employee
func parseRecord(record []string, line int) (models.Employee, error) {
	if len(record) != fieldCount {
		return models.Employee{}, models.NewLineValidationError(line,
			"Expected %d fields but found %d", fieldCount, len(record))
	}

	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return models.Employee{}, models.NewLineValidationError(line, "Invalid number format for Id: %q", record[0])
	}

	firstName, lastName := record[1], record[2]
	if firstName == "" {
		return models.Employee{}, models.NewLineValidationError(line, "firstName cannot be empty")
	}
	if lastName == "" {
		return models.Employee{}, models.NewLineValidationError(line, "lastName cannot be empty")
	}

	salary, err := strconv.ParseFloat(record[3], 64)
	if err != nil || !isFinite(salary) {
		return models.Employee{}, models.NewLineValidationError(line, "Invalid number format for salary: %q", record[3])
	}
	if salary < 0 {
		return models.Employee{}, models.NewLineValidationError(line, "Salary cannot be negative")
	}

	e := models.NewEmployee(models.EmployeeID(id), firstName, lastName, salary)

	if record[4] != "" {
		managerID, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return models.Employee{}, models.NewLineValidationError(line, "Invalid number format for managerId: %q", record[4])
		}
		e = e.ReportingTo(models.EmployeeID(managerID))
	}

	return e, nil
}

// isBlank reports whether a record came from a whitespace-only line
func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
