package controllers

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"awguestbook/internal/delivery/http/helpers"
	"awguestbook/internal/domain"
)

// utf8BOM makes spreadsheet applications detect the CSV as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportHeader = []string{"No", "Nama", "Email", "Telepon", "Pesan", "Meja", "Status", "Check-in", "Terdaftar"}

type ExportController struct {
	Logger *slog.Logger
	Guests domain.GuestService
	Events domain.EventService
}

func NewExportController(logger *slog.Logger, guests domain.GuestService, events domain.EventService) *ExportController {
	return &ExportController{
		Logger: logger,
		Guests: guests,
		Events: events,
	}
}

// Get godoc
// @Summary Export the guest list
// @Description Exports guests of the event_id scope (or all owned events) as csv, excel, or pdf. The CSV starts with a UTF-8 BOM; excel is an HTML table served as application/vnd.ms-excel; pdf is a printable HTML page.
// @Tags export
// @Produce text/csv
// @Param format query string false "csv (default), excel, or pdf"
// @Param event_id query int false "Event scope; omit for all owned events"
// @Success 200 {string} string "file download"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /api/export [get]
func (c *ExportController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	eventID := queryID(r, "event_id")

	title := "Semua Event"
	if eventID != 0 {
		event, err := c.Events.Get(r.Context(), userID, eventID)
		if err != nil {
			writeServiceError(w, r, c.Logger, err)
			return
		}
		title = event.Name
	}
	guests, err := c.Guests.List(r.Context(), userID, eventID, "")
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}

	switch format {
	case "csv":
		c.writeCSV(w, r, guests)
	case "excel":
		c.writeExcel(w, r, title, guests)
	case "pdf":
		c.writePDF(w, r, title, guests)
	default:
		helpers.WriteError(w, http.StatusBadRequest, "unknown format")
	}
}

func (c *ExportController) writeCSV(w http.ResponseWriter, r *http.Request, guests []*domain.Guest) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment("csv"))
	if _, err := w.Write(utf8BOM); err != nil {
		return
	}
	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeader)
	for i, g := range guests {
		_ = cw.Write([]string{
			strconv.Itoa(i + 1),
			g.Nama,
			g.Email,
			g.Telepon,
			g.Pesan,
			tableLabel(g),
			statusLabel(g),
			checkinLabel(g),
			g.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		c.Logger.ErrorContext(r.Context(), "csv export failed", "err", err)
	}
}

// exportRow is one guest prepared for the HTML-based exports.
type exportRow struct {
	No        int
	Nama      string
	Email     string
	Telepon   string
	Pesan     string
	Meja      string
	Status    string
	CheckedIn string
	CreatedAt string
}

type exportPage struct {
	Title       string
	GeneratedAt string
	Rows        []exportRow
	Printable   bool
}

func (c *ExportController) writeExcel(w http.ResponseWriter, r *http.Request, title string, guests []*domain.Guest) {
	w.Header().Set("Content-Type", "application/vnd.ms-excel; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment("xls"))
	c.renderExportPage(w, r, title, guests, false)
}

func (c *ExportController) writePDF(w http.ResponseWriter, r *http.Request, title string, guests []*domain.Guest) {
	// Served as a printable page; the browser's print dialog produces the PDF.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.renderExportPage(w, r, title, guests, true)
}

func (c *ExportController) renderExportPage(w http.ResponseWriter, r *http.Request, title string, guests []*domain.Guest, printable bool) {
	page := exportPage{
		Title:       title,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Rows:        make([]exportRow, 0, len(guests)),
		Printable:   printable,
	}
	for i, g := range guests {
		page.Rows = append(page.Rows, exportRow{
			No:        i + 1,
			Nama:      g.Nama,
			Email:     g.Email,
			Telepon:   g.Telepon,
			Pesan:     g.Pesan,
			Meja:      tableLabel(g),
			Status:    statusLabel(g),
			CheckedIn: checkinLabel(g),
			CreatedAt: g.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	if err := exportTemplate.Execute(w, page); err != nil {
		c.Logger.ErrorContext(r.Context(), "export render failed", "err", err)
	}
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="guests-%s.%s"`, time.Now().Format("20060102"), ext)
}

func tableLabel(g *domain.Guest) string {
	if g.TableNumber == nil {
		return "-"
	}
	return *g.TableNumber
}

func statusLabel(g *domain.Guest) string {
	if g.Status == domain.StatusCheckedIn {
		return "Hadir"
	}
	return "Belum Hadir"
}

func checkinLabel(g *domain.Guest) string {
	if g.CheckedInAt == nil {
		return "-"
	}
	return g.CheckedInAt.Format("2006-01-02 15:04")
}

var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Daftar Tamu - {{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; }
h1 { font-size: 18px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 6px 8px; font-size: 12px; text-align: left; }
th { background: #667eea; color: white; }
tr:nth-child(even) td { background: #f4f4f8; }
.meta { color: #666; font-size: 12px; margin-bottom: 12px; }
</style>
</head>
<body{{if .Printable}} onload="window.print()"{{end}}>
<h1>Daftar Tamu - {{.Title}}</h1>
<p class="meta">Dibuat {{.GeneratedAt}}</p>
<table>
<tr><th>No</th><th>Nama</th><th>Email</th><th>Telepon</th><th>Pesan</th><th>Meja</th><th>Status</th><th>Check-in</th><th>Terdaftar</th></tr>
{{range .Rows}}<tr><td>{{.No}}</td><td>{{.Nama}}</td><td>{{.Email}}</td><td>{{.Telepon}}</td><td>{{.Pesan}}</td><td>{{.Meja}}</td><td>{{.Status}}</td><td>{{.CheckedIn}}</td><td>{{.CreatedAt}}</td></tr>
{{end}}</table>
</body>
</html>
`))
