package report

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"university-backend/internal/entity"
)

// UserRow is one accepted line of a user import workbook.
type UserRow struct {
	Line       int
	ID         string
	Name       string
	Email      string
	Password   string
	Role       entity.Role
	Department string
}

// ImportHeaders is the expected first row of an import sheet.
var ImportHeaders = []string{"ID", "Name", "Email", "Password", "Role", "Department"}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ReadUsers parses the first sheet of an .xlsx. It returns the valid rows and
// the 1-based sheet row numbers of every rejected line. Ids already present
// in existing are rejected, as are ids repeated within the file.
func ReadUsers(r io.Reader, existing map[string]struct{}) ([]UserRow, []int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading rows")
	}

	var (
		users  []UserRow
		failed []int
		local  = make(map[string]int)
	)

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		line := i + 1

		if len(row) < 5 {
			failed = append(failed, line)
			continue
		}

		u := UserRow{
			Line:     line,
			ID:       strings.TrimSpace(row[0]),
			Name:     norm.NFC.String(strings.TrimSpace(row[1])),
			Email:    strings.TrimSpace(row[2]),
			Password: strings.TrimSpace(row[3]),
			Role:     entity.Role(strings.ToLower(strings.TrimSpace(row[4]))),
		}
		if len(row) > 5 {
			u.Department = strings.TrimSpace(row[5])
		}

		if u.ID == "" || u.Name == "" || u.Email == "" || u.Password == "" {
			failed = append(failed, line)
			continue
		}
		if !isHalfWidth(u.ID) || !isHalfWidth(u.Password) {
			failed = append(failed, line)
			continue
		}
		if !u.Role.Valid() || !emailRegex.MatchString(u.Email) {
			failed = append(failed, line)
			continue
		}
		if _, ok := existing[u.ID]; ok {
			failed = append(failed, line)
			continue
		}
		if prev, ok := local[u.ID]; ok {
			failed = append(failed, prev, line)
			continue
		}

		local[u.ID] = line
		users = append(users, u)
	}

	// a duplicate id invalidates its first occurrence too
	if len(failed) > 0 {
		bad := make(map[int]struct{}, len(failed))
		for _, n := range failed {
			bad[n] = struct{}{}
		}
		kept := users[:0]
		for _, u := range users {
			if _, ok := bad[local[u.ID]]; !ok {
				kept = append(kept, u)
			}
		}
		users = kept
	}

	return users, dedupe(failed), nil
}

// isHalfWidth reports whether s holds no full-width forms.
func isHalfWidth(s string) bool {
	for _, r := range norm.NFC.String(s) {
		if r >= '\uFF01' && r <= '\uFF60' || r >= '\uFFE0' && r <= '\uFFEF' {
			return false
		}
	}
	return true
}

func dedupe(rows []int) []int {
	seen := make(map[int]struct{}, len(rows))
	out := rows[:0]
	for _, n := range rows {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
