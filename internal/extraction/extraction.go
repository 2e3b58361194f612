// Package extraction turns raw complaint email HTML into a normalized record
// of structured fields. It first flattens the HTML to plain text with the
// paragraph structure preserved, detects which organizational template
// produced the email, slices the free-text complaint body out via the
// template's markers and applies the template's field patterns.
package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	coreerrors "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/errors"
)

// EmailFields is the extraction result. A template match does not guarantee
// every field is found; all fields except Message are best effort and default
// to the empty string. Message is always populated, falling back to the whole
// cleaned text when no template matches.
type EmailFields struct {
	Template    string `json:"template"`
	Anrede      string `json:"anrede"`
	Email       string `json:"email"`
	Vorname     string `json:"vorname"`
	Nachname    string `json:"nachname"`
	Message     string `json:"message"`
	Linie       string `json:"linie"`
	Haltestelle string `json:"haltestelle"`
	Richtung    string `json:"richtung"`
	Stadt       string `json:"stadt"`
	Datum       string `json:"datum"`
}

var (
	spaceRunRe     = regexp.MustCompile(`[^\S\n]+`)
	spaceAroundNL  = regexp.MustCompile(` *\n *`)
	newlineRunRe   = regexp.MustCompile(`\n{3,}`)
	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
)

// Extract parses rawHTML and returns the structured fields of the complaint.
// It returns ErrExtraction when the HTML cannot be parsed and
// ErrUnknownTemplate when no known layout matches; in the latter case the
// returned fields still carry the whole cleaned text as Message so callers
// that tolerate unclassified mail can keep working with it.
func Extract(rawHTML string) (EmailFields, error) {
	fields := EmailFields{}

	text, err := htmlToText(rawHTML)
	if err != nil {
		return fields, errors.Wrap(coreerrors.ErrExtraction, err.Error())
	}

	template, err := ClassifyTemplate(text)
	if err != nil {
		fields.Message = text
		return fields, err
	}

	fields.Template = template.Type
	fields.Message = extractBody(text, template)

	// Field patterns run against the full normalized text, not the sliced
	// body: sender details usually sit outside the body markers. A pattern
	// that finds nothing leaves the field empty.
	for name, pattern := range template.FieldPatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) > 1 && match[1] != "" {
			setField(&fields, name, strings.TrimSpace(match[1]))
		}
	}

	return fields, nil
}

// htmlToText flattens email HTML into plain text. Block elements and line
// breaks become newlines before the text content is taken, so the field
// patterns can rely on line boundaries surviving the flattening.
func htmlToText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, head").Remove()

	doc.Find("br").Each(func(i int, el *goquery.Selection) {
		el.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li, tr, blockquote, h1, h2, h3, h4, h5, h6").Each(func(i int, el *goquery.Selection) {
		el.AfterHtml("\n")
	})

	return normalizeText(doc.Find("body").Text()), nil
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, " ", " ")
	text = entityReplacer.Replace(text)
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = spaceAroundNL.ReplaceAllString(text, "\n")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// extractBody slices the free-text complaint out of the normalized text. A
// missing start marker defaults to the beginning of the text, a missing end
// marker to the end; among multiple candidate end markers the earliest match
// wins.
func extractBody(text string, template *TemplateConfig) string {
	start := 0
	if template.StartMarker != "" {
		var idx int
		if template.StartFromLast {
			idx = strings.LastIndex(text, template.StartMarker)
		} else {
			idx = strings.Index(text, template.StartMarker)
		}
		if idx != -1 {
			start = idx + len(template.StartMarker)
		}
	}

	body := text[start:]
	end := len(body)
	for _, marker := range template.EndMarkers {
		if idx := strings.Index(body, marker); idx != -1 && idx < end {
			end = idx
		}
	}
	body = body[:end]

	for _, artifact := range template.StripArtifacts {
		body = strings.ReplaceAll(body, artifact, "")
	}

	return strings.TrimSpace(body)
}

func setField(fields *EmailFields, name, value string) {
	switch name {
	case "anrede":
		fields.Anrede = value
	case "email":
		fields.Email = value
	case "vorname":
		fields.Vorname = value
	case "nachname":
		fields.Nachname = value
	case "linie":
		fields.Linie = value
	case "haltestelle":
		fields.Haltestelle = value
	case "richtung":
		fields.Richtung = value
	case "stadt":
		fields.Stadt = value
	case "datum":
		fields.Datum = value
	}
}
