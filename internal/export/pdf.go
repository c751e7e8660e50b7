package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ContentType is the media type of rendered documents.
const ContentType = "application/pdf"

// Layout in points on an A4 page.
const (
	margin    = 40.0
	qrSize    = 72.0
	footerGap = 14.0

	fsTitle   = 20.0
	fsSection = 15.0
	fsBody    = 11.0
	fsFooter  = 10.0

	lhTitle   = 28.0
	lhSection = 20.0
	lhBody    = 18.0

	spBeforeSection = 28.0
	spAfterHeading  = 12.0

	// footerHeight is reserved at the bottom of every page for the QR footer.
	footerHeight = 92.0

	regularFontFile = "NotoSans-Regular.ttf"
	boldFontFile    = "NotoSans-Bold.ttf"
	unicodeFamily   = "NotoSans"
	coreFamily      = "Helvetica"
	qrImageName     = "footer-qr"
	qrPixels        = 256
)

var (
	// ErrNilPack is returned when there is nothing to render.
	ErrNilPack = errors.New("pack is nil")

	// ErrRender is returned when the document cannot be produced.
	ErrRender = errors.New("failed to render document")
)

var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// Config controls rendering.
type Config struct {
	// FontDir holds NotoSans-Regular.ttf and NotoSans-Bold.ttf. When either
	// is missing the core Helvetica font is used and diacritics are folded
	// to plain letters.
	FontDir string
	// AppURL is printed in the footer next to a QR code. No footer without it.
	AppURL string
}

// PDFRenderer lays a pack out as a paginated A4 document.
type PDFRenderer struct {
	cfg    Config
	logger *slog.Logger
}

// NewPDFRenderer creates a renderer.
func NewPDFRenderer(cfg Config, logger *slog.Logger) *PDFRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFRenderer{
		cfg:    cfg,
		logger: logger.With("component", "pdf_renderer"),
	}
}

// Render writes the pack as a PDF to w: the title, then summary, easy
// text, flashcards and quiz sections, then the footer link with its QR code.
func (r *PDFRenderer) Render(w io.Writer, title string, lang litepack.Language, pack *litepack.LitePack) error {
	if pack == nil {
		return ErrNilPack
	}
	pdf := r.build(title, lang, pack)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// FileName turns a pack title into a download file name.
func FileName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "pack"
	}
	return unsafeFileChars.ReplaceAllString(title, "_") + ".pdf"
}

func (r *PDFRenderer) build(title string, lang litepack.Language, pack *litepack.LitePack) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("scry-lite", true)

	d := &document{pdf: pdf}
	d.loadFonts(r.cfg.FontDir, r.logger)

	pdf.AddPage()
	d.pageW, d.pageH = pdf.GetPageSize()
	d.maxW = d.pageW - 2*margin
	d.y = margin

	d.setFont(true, fsTitle)
	for _, ln := range d.wrap(title) {
		d.ensureSpace(lhTitle)
		pdf.Text(margin, d.y, ln)
		d.y += lhTitle
	}
	d.setFont(false, fsBody)

	labels := labelsFor(lang)

	d.heading(labels.summary)
	for _, bullet := range pack.Summary {
		d.paragraph("• " + bullet)
	}

	d.heading(labels.easy)
	d.paragraph(pack.Easy)

	d.heading("Flashcards")
	for i, card := range pack.Flashcards {
		if i > 0 {
			d.blankLine()
		}
		d.paragraph("Q: " + card.Question)
		d.paragraph("A: " + card.Answer)
	}

	d.heading("Quiz")
	for i, item := range pack.Quiz {
		if i > 0 {
			d.blankLine()
		}
		d.paragraph(fmt.Sprintf("%d. %s", i+1, item.Question))
		d.paragraph(optionsLine(item.Options))
	}

	if err := d.footer(r.cfg.AppURL, labels.openOnline); err != nil {
		r.logger.Warn("pdf footer skipped", "error", err)
	}
	return pdf
}

type labels struct {
	summary    string
	easy       string
	openOnline string
}

func labelsFor(lang litepack.Language) labels {
	if lang == litepack.Polish {
		return labels{summary: "Podsumowanie", easy: "Wersja łatwiejsza", openOnline: "Otwórz online:"}
	}
	return labels{summary: "Summary", easy: "Easy Language", openOnline: "Open online:"}
}

func optionsLine(options [litepack.OptionCount]string) string {
	parts := make([]string, 0, len(options))
	for i, o := range options {
		parts = append(parts, fmt.Sprintf("%c) %s", 'A'+i, o))
	}
	return strings.Join(parts, "   ")
}

// document tracks the write position while laying out pages.
type document struct {
	pdf     *fpdf.Fpdf
	family  string
	unicode bool
	tr      func(string) string

	pageW, pageH float64
	maxW         float64
	y            float64
}

func (d *document) loadFonts(dir string, log *slog.Logger) {
	d.family = coreFamily
	core := d.pdf.UnicodeTranslatorFromDescriptor("")
	d.tr = func(s string) string { return core(foldDiacritics(s)) }
	if dir == "" {
		return
	}

	regular, err := os.ReadFile(filepath.Join(dir, regularFontFile))
	if err != nil {
		log.Warn("pdf font unavailable, using core font", "error", err)
		return
	}
	bold, err := os.ReadFile(filepath.Join(dir, boldFontFile))
	if err != nil {
		log.Warn("pdf font unavailable, using core font", "error", err)
		return
	}
	d.pdf.AddUTF8FontFromBytes(unicodeFamily, "", regular)
	d.pdf.AddUTF8FontFromBytes(unicodeFamily, "B", bold)
	d.family = unicodeFamily
	d.unicode = true
	d.tr = func(s string) string { return s }
}

func (d *document) setFont(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont(d.family, style, size)
}

// ensureSpace starts a new page when needed points do not fit above the
// footer.
func (d *document) ensureSpace(needed float64) {
	if d.y+needed > d.pageH-margin-footerHeight {
		d.pdf.AddPage()
		d.y = margin
	}
}

func (d *document) heading(text string) {
	d.y += spBeforeSection
	d.ensureSpace(lhSection)
	d.setFont(true, fsSection)
	d.pdf.Text(margin, d.y, d.tr(text))
	d.y += spAfterHeading
	d.setFont(false, fsBody)
}

func (d *document) paragraph(text string) {
	for _, ln := range d.wrap(text) {
		d.ensureSpace(lhBody)
		d.pdf.Text(margin, d.y, ln)
		d.y += lhBody
	}
}

func (d *document) blankLine() {
	d.ensureSpace(lhBody)
	d.y += lhBody
}

// wrap translates text for the current font and breaks it into lines no
// wider than the text column. Words wider than the column are split.
func (d *document) wrap(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(d.tr(text), "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if d.pdf.GetStringWidth(candidate) <= d.maxW {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = ""
			for _, piece := range d.splitWide(word) {
				if line != "" {
					lines = append(lines, line)
				}
				line = piece
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// splitWide cuts a word into pieces that each fit the column. Core fonts
// measure bytes, the Unicode font measures runes.
func (d *document) splitWide(word string) []string {
	var units []string
	if d.unicode {
		for _, r := range word {
			units = append(units, string(r))
		}
	} else {
		for i := 0; i < len(word); i++ {
			units = append(units, word[i:i+1])
		}
	}

	var pieces []string
	cur := ""
	for _, u := range units {
		if cur != "" && d.pdf.GetStringWidth(cur+u) > d.maxW {
			pieces = append(pieces, cur)
			cur = ""
		}
		cur += u
	}
	if cur != "" {
		pieces = append(pieces, cur)
	}
	return pieces
}

// footer prints the link and its QR code at the bottom of the last page.
func (d *document) footer(link, label string) error {
	if link == "" {
		return nil
	}
	png, err := qrcode.Encode(link, qrcode.Medium, qrPixels)
	if err != nil {
		return fmt.Errorf("failed to encode qr code: %w", err)
	}

	if d.y > d.pageH-margin-footerHeight+lhBody {
		d.pdf.AddPage()
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))

	d.setFont(false, fsFooter)
	footerY := d.pageH - footerGap
	d.pdf.Text(margin, footerY, d.tr(label))
	d.pdf.Text(margin+100, footerY, d.tr(link))
	d.pdf.ImageOptions(qrImageName, d.pageW-margin-qrSize, d.pageH-margin-qrSize, qrSize, qrSize, false, opts, 0, "")
	return nil
}

var polishLetters = strings.NewReplacer("ł", "l", "Ł", "L")

// foldDiacritics strips combining marks so text survives the core font's
// single-byte encoding.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, polishLetters.Replace(s))
	if err != nil {
		return s
	}
	return out
}
