package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/francosciascia/expert-giggle/models"
	"github.com/francosciascia/expert-giggle/utils"

	"github.com/go-pdf/fpdf"
)

const (
	FormatoPDF = "pdf"

	descripcionChunk = 60
	ejercicioChunk   = 50
)

// Archiver stores a copy of an exported document. See utils.S3Archiver.
type Archiver interface {
	Archive(ctx context.Context, key, contentType string, body []byte) error
}

// Export is a rendered document ready to be downloaded.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportService struct {
	rutinas  *RutinaService
	archiver Archiver
	log      *slog.Logger
	now      func() time.Time
}

// NewExportService builds the exporter; archiver may be nil.
func NewExportService(rutinas *RutinaService, archiver Archiver, log *slog.Logger) *ExportService {
	if log == nil {
		log = slog.Default()
	}
	return &ExportService{rutinas: rutinas, archiver: archiver, log: log, now: time.Now}
}

// Export renders routine id in the requested format. Only "pdf" exists.
func (s *ExportService) Export(ctx context.Context, id uint, formato string) (*Export, error) {
	if formato == "" {
		formato = FormatoPDF
	}
	if formato != FormatoPDF {
		return nil, badRequest(MsgFormatoNoSoportado)
	}

	rutina, err := s.rutinas.loadByWeekday(s.rutinas.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	body, err := RenderRutinaPDF(rutina)
	if err != nil {
		return nil, fmt.Errorf("render rutina %d: %w", id, err)
	}

	out := &Export{
		Filename:    fmt.Sprintf("rutina_%d_%s.pdf", rutina.ID, s.now().UTC().Format("2006-01-02")),
		ContentType: "application/pdf",
		Body:        body,
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, "exports/"+out.Filename, out.ContentType, out.Body); err != nil {
			s.log.Warn("export.archive_failed", "rutina_id", rutina.ID, "err", err)
		}
	}
	return out, nil
}

// RenderRutinaPDF lays out title, description and one line per exercise.
func RenderRutinaPDF(r *models.Rutina) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(r.Nombre, true)
	pdf.AddPage()

	// core fonts are cp1252; accents and the middle dot survive the translation
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(usable, 10, tr(utils.HardWrap(r.Nombre, descripcionChunk)), "", "", false)

	pdf.SetFont("Arial", "", 11)
	descr := "Sin descripción"
	if r.Descripcion != nil && *r.Descripcion != "" {
		descr = *r.Descripcion
	}
	pdf.MultiCell(usable, 8, tr(utils.HardWrap(descr, descripcionChunk)), "", "", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "Ejercicios", "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(r.Ejercicios) == 0 {
		pdf.CellFormat(0, 7, "Sin ejercicios", "", 1, "", false, 0, "")
	}
	for _, e := range r.Ejercicios {
		pdf.SetX(left)
		pdf.MultiCell(usable, 7, tr(utils.HardWrap(ExerciseLine(e), ejercicioChunk)), "", "", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExerciseLine is "dia · nombre · SxR[ · Peso: W] · Orden: O[ · Notas: N]".
func ExerciseLine(e models.Ejercicio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s · %dx%d", e.DiaSemana, e.Nombre, e.Series, e.Repeticiones)
	if e.Peso != nil {
		b.WriteString(" · Peso: " + formatPeso(*e.Peso))
	}
	fmt.Fprintf(&b, " · Orden: %d", e.Orden)
	if e.Notas != nil && *e.Notas != "" {
		b.WriteString(" · Notas: " + *e.Notas)
	}
	return b.String()
}

// formatPeso keeps one decimal for whole numbers (80 -> "80.0").
func formatPeso(w float64) string {
	if w == float64(int64(w)) {
		return strconv.FormatFloat(w, 'f', 1, 64)
	}
	return strconv.FormatFloat(w, 'f', -1, 64)
}
