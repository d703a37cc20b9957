package engine

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TitlePlaceholder is the externally visible fallback title. Title
// extraction never fails the overall extraction.
const TitlePlaceholder = "Título não disponível"

// playerResponseMarker marks the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

// VideoMetadata is the best-effort page-level metadata for one video.
type VideoMetadata struct {
	Title      string
	UploadDate string
}

// CaptionTrack is a language-tagged pointer to one transcript payload.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// playerResponse models the subset of ytInitialPlayerResponse we read.
type playerResponse struct {
	VideoDetails struct {
		Title string `json:"title"`
	} `json:"videoDetails"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []CaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

var (
	dateLabelRE = regexp.MustCompile(`(?:Transmitido ao vivo em|Estreou em|Enviado em)\s+([^<">}]+)`)
	dateTextRE  = regexp.MustCompile(`"dateText"\s*:\s*\{\s*"simpleText"\s*:\s*"([^"]+)"`)
)

// extractPlayerResponse locates and decodes the embedded player JSON:
// marker in a script block, then a balanced search for the enclosing object.
func extractPlayerResponse(page []byte) (*playerResponse, error) {
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, &ParseError{What: "ytInitialPlayerResponse marker"}
	}
	raw := balancedJSON(page[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, &ParseError{What: "ytInitialPlayerResponse object"}
	}
	var pr playerResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, &ParseError{What: "ytInitialPlayerResponse JSON", Err: err}
	}
	return &pr, nil
}

// ExtractMetadata pulls a best-effort title and optional upload date from
// watch page bytes. Missing sources degrade to placeholders, never errors.
func ExtractMetadata(page []byte) VideoMetadata {
	md := VideoMetadata{Title: TitlePlaceholder}

	if pr, err := extractPlayerResponse(page); err == nil && pr.VideoDetails.Title != "" {
		md.Title = pr.VideoDetails.Title
	} else if t := ogTitle(page); t != "" {
		md.Title = t
	}

	if cfg.WithUploadDate {
		md.UploadDate = extractUploadDate(page)
	}
	return md
}

// ogTitle reads the og:title meta tag, the fallback title source.
func ogTitle(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	title, _ := doc.Find(`meta[property="og:title"]`).First().Attr("content")
	return strings.TrimSpace(title)
}

// extractUploadDate searches for a labeled date span, then for the
// dateText field in the embedded JSON. Absence is not an error.
func extractUploadDate(page []byte) string {
	if m := dateLabelRE.FindSubmatch(page); len(m) == 2 {
		return strings.TrimSpace(string(m[1]))
	}
	if m := dateTextRE.FindSubmatch(page); len(m) == 2 {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}
