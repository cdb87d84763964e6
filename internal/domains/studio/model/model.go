package model

type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateResult     State = "result"
	StatePublishing State = "publishing"
	StatePublished  State = "published"
)

// Workflow is the generate-then-publish state. ResultID identifies the generation that
// produced ImageSrc so late completions can tell whether they are still current.
type Workflow struct {
	State        State
	Prompt       string
	ImageSrc     string
	PublishedURL string
	ResultID     uint64
}
