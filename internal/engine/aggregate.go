package engine

import (
	"bytes"
	"strings"
)

const (
	// NoTranscriptLine fills the body slot of items whose strategies all failed.
	NoTranscriptLine = "Transcrição não disponível para este vídeo."
	// MultiDocFilename names any document assembled from two or more videos.
	MultiDocFilename = "Multiple_Transcriptions.txt"

	titleLinePrefix = "Título do Vídeo: "
	dateLinePrefix  = "Data de envio: "

	plainTextType    = "text/plain; charset=utf-8"
	sectionSeparator = "=========================================="
)

// TranscriptDocument is the pipeline's terminal artifact, built once from
// the complete ordinal-sorted result sequence and immutable afterwards.
type TranscriptDocument struct {
	Filename    string
	ContentType string
	Body        []byte
}

// HasAnyTranscript reports whether at least one result carries a transcript.
// Zero across the whole batch is one of the two user-visible failure paths.
func HasAnyTranscript(results []ExtractionResult) bool {
	for _, r := range results {
		if r.Transcript != "" {
			return true
		}
	}
	return false
}

// Aggregate assembles ordinal-sorted results into the final document.
// Item order always equals worklist order; transcript-less items keep
// their slot with the placeholder line.
func Aggregate(results []ExtractionResult) TranscriptDocument {
	if len(results) == 1 {
		return TranscriptDocument{
			Filename:    SlugFilename(results[0].Title) + ".txt",
			ContentType: plainTextType,
			Body:        []byte(renderSection(results[0])),
		}
	}

	var buf bytes.Buffer
	for _, r := range results {
		buf.WriteString(renderSection(r))
		buf.WriteString("\n" + sectionSeparator + "\n\n")
	}
	return TranscriptDocument{
		Filename:    MultiDocFilename,
		ContentType: plainTextType,
		Body:        buf.Bytes(),
	}
}

// renderSection writes one video's block: title line, optional date line,
// blank line, transcript or placeholder.
func renderSection(r ExtractionResult) string {
	var sb strings.Builder
	sb.WriteString(titleLinePrefix + r.Title + "\n")
	if r.UploadDate != "" {
		sb.WriteString(dateLinePrefix + r.UploadDate + "\n")
	}
	sb.WriteByte('\n')
	if r.Transcript != "" {
		sb.WriteString(r.Transcript)
	} else {
		sb.WriteString(NoTranscriptLine)
	}
	sb.WriteByte('\n')
	return sb.String()
}
