package constants

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func listParamsFor(t *testing.T, rawQuery string) ListParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/tasks?"+rawQuery, nil)

	return ParseListParams(c)
}

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     ListParams
	}{
		{
			name:     "defaults",
			rawQuery: "",
			want:     ListParams{Limit: DefaultLimit},
		},
		{
			name:     "completed true filter",
			rawQuery: "completed=true",
			want:     ListParams{Completed: boolPtr(true), Limit: DefaultLimit},
		},
		{
			name:     "completed false filter",
			rawQuery: "completed=false",
			want:     ListParams{Completed: boolPtr(false), Limit: DefaultLimit},
		},
		{
			name:     "limit and skip",
			rawQuery: "limit=25&skip=50",
			want:     ListParams{Limit: 25, Skip: 50},
		},
		{
			name:     "limit clamped to maximum",
			rawQuery: "limit=5000",
			want:     ListParams{Limit: MaxLimit},
		},
		{
			name:     "limit clamped to minimum",
			rawQuery: "limit=0",
			want:     ListParams{Limit: MinLimit},
		},
		{
			name:     "negative skip ignored",
			rawQuery: "skip=-3",
			want:     ListParams{Limit: DefaultLimit},
		},
		{
			name:     "sort descending with colon",
			rawQuery: "sortBy=createdAt:desc",
			want:     ListParams{Limit: DefaultLimit, SortField: "createdAt", SortDesc: true},
		},
		{
			name:     "sort descending with underscore separator",
			rawQuery: "sortBy=description_desc",
			want:     ListParams{Limit: DefaultLimit, SortField: "description", SortDesc: true},
		},
		{
			name:     "snake_case field keeps its underscore",
			rawQuery: "sortBy=created_at:desc",
			want:     ListParams{Limit: DefaultLimit, SortField: "created_at", SortDesc: true},
		},
		{
			name:     "snake_case field with underscore direction",
			rawQuery: "sortBy=updated_at_desc",
			want:     ListParams{Limit: DefaultLimit, SortField: "updated_at", SortDesc: true},
		},
		{
			name:     "bare snake_case field defaults to ascending",
			rawQuery: "sortBy=created_at",
			want:     ListParams{Limit: DefaultLimit, SortField: "created_at"},
		},
		{
			name:     "bare sort field defaults to ascending",
			rawQuery: "sortBy=completed",
			want:     ListParams{Limit: DefaultLimit, SortField: "completed"},
		},
		{
			name:     "unknown direction falls back to ascending",
			rawQuery: "sortBy=createdAt:sideways",
			want:     ListParams{Limit: DefaultLimit, SortField: "createdAt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listParamsFor(t, tt.rawQuery)

			if (got.Completed == nil) != (tt.want.Completed == nil) {
				t.Fatalf("Completed = %v, want %v", got.Completed, tt.want.Completed)
			}
			if got.Completed != nil && *got.Completed != *tt.want.Completed {
				t.Errorf("Completed = %v, want %v", *got.Completed, *tt.want.Completed)
			}
			if got.Limit != tt.want.Limit {
				t.Errorf("Limit = %d, want %d", got.Limit, tt.want.Limit)
			}
			if got.Skip != tt.want.Skip {
				t.Errorf("Skip = %d, want %d", got.Skip, tt.want.Skip)
			}
			if got.SortField != tt.want.SortField {
				t.Errorf("SortField = %q, want %q", got.SortField, tt.want.SortField)
			}
			if got.SortDesc != tt.want.SortDesc {
				t.Errorf("SortDesc = %v, want %v", got.SortDesc, tt.want.SortDesc)
			}
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}
