package extraction

import (
	"regexp"
	"strings"

	coreerrors "github.com/Surf-N-Code/transitiq.api.rbg.email-answer/internal/errors"
)

// TemplateConfig describes one known structural layout of an incoming
// complaint email. Layouts are detected by a substring marker and carved up by
// start/end markers; field patterns are layout specific.
type TemplateConfig struct {
	Type              string
	IdentifyingMarker string
	StartMarker       string
	// StartFromLast selects the last occurrence of StartMarker instead of
	// the first, needed for forwarded mails that quote earlier headers.
	StartFromLast  bool
	EndMarkers     []string
	StripArtifacts []string
	FieldPatterns  map[string]*regexp.Regexp
}

// knownTemplates is evaluated in order. Markers are not mutually exclusive
// substrings: forwarded complaints also contain "Betreff:", so the generic
// direct-mail template must stay last.
var knownTemplates = []TemplateConfig{
	{
		Type:              "websiteComplaintForm",
		IdentifyingMarker: "Eure Nachricht an uns",
		StartMarker:       "Eure Nachricht an uns",
		EndMarkers:        []string{"Dokumenten-Upload"},
		FieldPatterns: map[string]*regexp.Regexp{
			"anrede":   regexp.MustCompile(`Anrede\s*(Frau|Herr|Divers|Keine Angabe)`),
			"email":    regexp.MustCompile(`E-Mail\s*(\S+@\S+)`),
			"vorname":  regexp.MustCompile(`Vorname\s*(\S+)`),
			"nachname": regexp.MustCompile(`Nachname\s*(\S+)`),
		},
	},
	{
		Type:              "vrrForwardedComplaint",
		IdentifyingMarker: "Meldungs ID:",
		StartMarker:       "Anliegen:",
		StartFromLast:     true,
		EndMarkers:        []string{"Rheinbahn AG | "},
		StripArtifacts:    []string{"Meldung des Kunden:", "[Externe E-Mail]"},
		FieldPatterns: map[string]*regexp.Regexp{
			"email":       regexp.MustCompile(`Mail:\s*(\S+@\S+)`),
			"vorname":     regexp.MustCompile(`Vorname, Name:\s*(\S+)`),
			"nachname":    regexp.MustCompile(`(?s)Vorname, Name:\s*\S+\s+(.*?)\s*Straße/Hausnummer:`),
			"linie":       regexp.MustCompile(`Linie:\s*(\S+)`),
			"haltestelle": regexp.MustCompile(`(?m)Haltestelle:\s*([^\n]+)`),
			"richtung":    regexp.MustCompile(`(?m)Richtung:\s*([^\n]+)`),
			"stadt":       regexp.MustCompile(`(?m)Ort:\s*([^\n]+)`),
			"datum":       regexp.MustCompile(`(?m)Datum:\s*([^\n]+)`),
		},
	},
	{
		Type:              "vrrPortalComplaint",
		IdentifyingMarker: "Beschwerde-ID:",
		StartMarker:       "Anliegen:",
		StartFromLast:     true,
		EndMarkers:        []string{"Rheinbahn AG | "},
		StripArtifacts:    []string{"Meldung des Kunden:", "[Externe E-Mail]"},
		FieldPatterns: map[string]*regexp.Regexp{
			"email":       regexp.MustCompile(`Mail:\s*(\S+@\S+)`),
			"vorname":     regexp.MustCompile(`(?m)Vorname:\s*(\S+)`),
			"nachname":    regexp.MustCompile(`(?m)^Name:\s*(\S+)`),
			"linie":       regexp.MustCompile(`Linie:\s*(\S+)`),
			"haltestelle": regexp.MustCompile(`(?m)Haltestelle:\s*([^\n]+)`),
			"richtung":    regexp.MustCompile(`(?m)Richtung:\s*([^\n]+)`),
			"stadt":       regexp.MustCompile(`(?m)Ort:\s*([^\n]+)`),
			"datum":       regexp.MustCompile(`(?m)Datum:\s*([^\n]+)`),
		},
	},
	{
		Type:              "callcenterForwardedComplaint",
		IdentifyingMarker: "Datum/Uhrzeit des Vorfalls:",
		StartMarker:       "Bemerkung:",
		EndMarkers:        []string{"Rheinbahn AG | "},
		StripArtifacts:    []string{"[Externe E-Mail]"},
		FieldPatterns: map[string]*regexp.Regexp{
			"anrede":      regexp.MustCompile(`Anrede:\s*(Frau|Herr|Divers)`),
			"email":       regexp.MustCompile(`Mail:\s*(\S+@\S+)`),
			"vorname":     regexp.MustCompile(`Vorname:\s*(\S+)`),
			"nachname":    regexp.MustCompile(`Nachname:\s*(\S+)`),
			"linie":       regexp.MustCompile(`Linie:\s*(\S+)`),
			"haltestelle": regexp.MustCompile(`(?m)Haltestelle:\s*([^\n]+)`),
			"richtung":    regexp.MustCompile(`(?m)Richtung:\s*([^\n]+)`),
			"stadt":       regexp.MustCompile(`(?m)Ort:\s*([^\n]+)`),
			"datum":       regexp.MustCompile(`Datum/Uhrzeit des Vorfalls:\s*(\S+)`),
		},
	},
	{
		Type:              "directMailComplaint",
		IdentifyingMarker: "Betreff:",
		StartMarker:       "Betreff:",
		StartFromLast:     true,
		EndMarkers:        []string{"Rheinbahn AG | "},
		StripArtifacts:    []string{"[Externe E-Mail]"},
	},
}

// ClassifyTemplate returns the first template whose identifying marker occurs
// in the normalized text, or ErrUnknownTemplate when none matches.
func ClassifyTemplate(text string) (*TemplateConfig, error) {
	for i := range knownTemplates {
		if strings.Contains(text, knownTemplates[i].IdentifyingMarker) {
			return &knownTemplates[i], nil
		}
	}
	return nil, coreerrors.ErrUnknownTemplate
}
