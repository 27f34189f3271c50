package domain

// ProsodyHint tags a speakable item for the TTS collaborator.
type ProsodyHint string

const (
	// ProsodyParagraph marks ordinary body text.
	ProsodyParagraph ProsodyHint = "paragraph"

	// ProsodyHeading marks a chapter/section title, which a TTS layer
	// may announce with different emphasis or a pause.
	ProsodyHeading ProsodyHint = "heading"
)

// SpeakableItem is one entry in the ordered feed handed to a TTS
// collaborator. This core produces the feed; it never produces audio.
type SpeakableItem struct {
	// Text is the content to speak.
	Text string

	// Prosody hints at how the item should be rendered.
	Prosody ProsodyHint

	// SegmentIndex is the index of the underlying segment, or -1 for
	// heading items synthesized from the outline.
	SegmentIndex int
}
