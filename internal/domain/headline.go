package domain

// Status enumerates headline lifecycle states in the Headline Queue.
type Status string

const (
	StatusApproved        Status = "approved"
	StatusSentToNewsAgent Status = "sent_to_news_agent"
)

// PipelineStatusQueued is assigned to every Article the job creates.
const PipelineStatusQueued = "queued"

// Defaults applied when the source headline leaves the field unset.
const (
	DefaultTargetWordCount = 1000
	DefaultPriorityOrder   = 1
)

// Headline is a row of the Headline Queue table awaiting transfer.
type Headline struct {
	ID               string
	Status           Status
	Headline         string
	ArticlePrompt    string
	SEOKeyword       string
	Angle            string
	Subject          string
	BatchID          string
	TargetWordCount  int
	PriorityOrder    int
	PublishDate      string
	ArticlesRecordID string
}

// ArticleDraft holds the field set for one Articles row to be created.
// Publication date is intentionally absent: a human sets it during review.
type ArticleDraft struct {
	Title           string
	Prompt          string
	SEOKeyword      string
	Angle           string
	Subject         string
	BatchID         string
	TargetWordCount int
	PriorityOrder   int
	HeadlineQueueID string
	PipelineStatus  string
}

// NewArticleDraft maps a headline onto an Articles row, applying defaults.
func NewArticleDraft(h Headline) ArticleDraft {
	draft := ArticleDraft{
		Title:           h.Headline,
		Prompt:          h.ArticlePrompt,
		SEOKeyword:      h.SEOKeyword,
		Angle:           h.Angle,
		Subject:         h.Subject,
		BatchID:         h.BatchID,
		TargetWordCount: h.TargetWordCount,
		PriorityOrder:   h.PriorityOrder,
		HeadlineQueueID: h.ID,
		PipelineStatus:  PipelineStatusQueued,
	}
	if draft.TargetWordCount <= 0 {
		draft.TargetWordCount = DefaultTargetWordCount
	}
	if draft.PriorityOrder <= 0 {
		draft.PriorityOrder = DefaultPriorityOrder
	}
	return draft
}

// CreatedArticle identifies an Articles row assigned by the remote service.
type CreatedArticle struct {
	ID    string
	Title string
}
