package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HeadlineSync/internal/domain"
)

func TestTransferredHeadlineIDsProjectsSingleField(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, `NOT({headline_queue_id} = '')`, q.Get("filterByFormula"))
		assert.Equal(t, []string{"headline_queue_id"}, q["fields[]"])

		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "recA1", "fields": map[string]any{"headline_queue_id": "recH1"}},
				{"id": "recA2", "fields": map[string]any{"headline_queue_id": "recH2"}},
				{"id": "recA3", "fields": map[string]any{}},
			},
		})
	}))

	store := NewArticleStore(client, "tblArticles")
	ids, err := store.TransferredHeadlineIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"recH1": true, "recH2": true}, ids)
}

func TestCreateSendsDraftFields(t *testing.T) {
	t.Parallel()

	var gotFields map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Fields map[string]any `json:"fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotFields = body.Fields

		json.NewEncoder(w).Encode(map[string]any{"id": "recNEW", "fields": body.Fields})
	}))

	store := NewArticleStore(client, "tblArticles")
	draft := domain.NewArticleDraft(domain.Headline{
		ID:            "recH1",
		Headline:      "Succulents 101",
		ArticlePrompt: "Explain succulent care",
		SEOKeyword:    "succulents",
		Subject:       "plants",
		BatchID:       "batch-7",
	})

	created, err := store.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "recNEW", created.ID)
	assert.Equal(t, "Succulents 101", created.Title)

	assert.Equal(t, "Succulents 101", gotFields["article_title"])
	assert.Equal(t, "recH1", gotFields["headline_queue_id"])
	assert.Equal(t, "queued", gotFields["pipeline_status"])
	assert.EqualValues(t, 1000, gotFields["target_word_count"])
	assert.EqualValues(t, 1, gotFields["priority_order"])

	// Publication date is set by a human during review, never by the job.
	_, present := gotFields["publish_date"]
	assert.False(t, present)
}
