package schema

// TaskTable represents the 'moderation.task' table.
//
// CommentTask, RequestTask, and WishTask share this one physical shape —
// Kind discriminates between them, and the kind-specific reference lives in
// one of the three nullable reference columns (ArticleID / ArticleURL /
// SongName).
type TaskTable struct {
	Table          string
	TaskID         string
	Kind           string
	ArticleID      string
	ArticleURL     string
	SongName       string
	ParentTaskID   string
	Status         string
	BodyText       string
	ClientName     string
	AdminNote      string
	FailureReason  string
	Fingerprint    string
	ClientIP       string
	IPRegion       string
	AttemptCount   string
	AutoApprove    string
	CreatedAt      string
	UpdatedAt      string
	ApprovedAt     string
	CompletedAt    string
}

// Task is the schema definition for moderation.task.
var Task = TaskTable{
	Table:         "moderation.task",
	TaskID:        "task_id",
	Kind:          "kind",
	ArticleID:     "article_id",
	ArticleURL:    "article_url",
	SongName:      "song_name",
	ParentTaskID:  "parent_task_id",
	Status:        "status",
	BodyText:      "body_text",
	ClientName:    "client_name",
	AdminNote:     "admin_note",
	FailureReason: "failure_reason",
	Fingerprint:   "fingerprint",
	ClientIP:      "client_ip",
	IPRegion:      "ip_region",
	AttemptCount:  "attempt_count",
	AutoApprove:   "auto_approve",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	ApprovedAt:    "approved_at",
	CompletedAt:   "completed_at",
}

func (t TaskTable) Columns() []string {
	return []string{
		t.TaskID, t.Kind, t.ArticleID, t.ArticleURL, t.SongName, t.ParentTaskID,
		t.Status, t.BodyText, t.ClientName, t.AdminNote, t.FailureReason,
		t.Fingerprint, t.ClientIP, t.IPRegion, t.AttemptCount, t.AutoApprove,
		t.CreatedAt, t.UpdatedAt, t.ApprovedAt, t.CompletedAt,
	}
}

// PublishedTable represents the 'moderation.published' table.
type PublishedTable struct {
	Table             string
	CommentID         string
	TaskID            string
	ArticleID         string
	AuthorName        string
	AvatarSeed        string
	AuthorHash        string
	Body              string
	AIReplyMarkdown   string
	PublishedAt       string
}

// Published is the schema definition for moderation.published.
var Published = PublishedTable{
	Table:           "moderation.published",
	CommentID:       "comment_id",
	TaskID:          "task_id",
	ArticleID:       "article_id",
	AuthorName:      "author_name",
	AvatarSeed:      "avatar_seed",
	AuthorHash:      "author_hash",
	Body:            "body",
	AIReplyMarkdown: "ai_reply_markdown",
	PublishedAt:     "published_at",
}

func (t PublishedTable) Columns() []string {
	return []string{
		t.CommentID, t.TaskID, t.ArticleID, t.AuthorName, t.AvatarSeed,
		t.AuthorHash, t.Body, t.AIReplyMarkdown, t.PublishedAt,
	}
}

// AiRunTable represents the 'moderation.ai_run' table.
type AiRunTable struct {
	Table               string
	RunID               string
	TaskID              string
	Status              string
	RunnerProgram       string
	ExitCode            string
	FinalReplyMarkdown  string
	FailureReason       string
	StartedAt           string
	UpdatedAt           string
	CompletedAt         string
}

// AiRun is the schema definition for moderation.ai_run.
var AiRun = AiRunTable{
	Table:              "moderation.ai_run",
	RunID:              "run_id",
	TaskID:             "task_id",
	Status:             "status",
	RunnerProgram:      "runner_program",
	ExitCode:           "exit_code",
	FinalReplyMarkdown: "final_reply_markdown",
	FailureReason:      "failure_reason",
	StartedAt:          "started_at",
	UpdatedAt:          "updated_at",
	CompletedAt:        "completed_at",
}

func (t AiRunTable) Columns() []string {
	return []string{
		t.RunID, t.TaskID, t.Status, t.RunnerProgram, t.ExitCode,
		t.FinalReplyMarkdown, t.FailureReason, t.StartedAt, t.UpdatedAt, t.CompletedAt,
	}
}

// AiRunChunkTable represents the 'moderation.ai_run_chunk' table.
type AiRunChunkTable struct {
	Table      string
	ChunkID    string
	RunID      string
	TaskID     string
	Stream     string
	BatchIndex string
	Content    string
	CreatedAt  string
}

// AiRunChunk is the schema definition for moderation.ai_run_chunk.
var AiRunChunk = AiRunChunkTable{
	Table:      "moderation.ai_run_chunk",
	ChunkID:    "chunk_id",
	RunID:      "run_id",
	TaskID:     "task_id",
	Stream:     "stream",
	BatchIndex: "batch_index",
	Content:    "content",
	CreatedAt:  "created_at",
}

func (t AiRunChunkTable) Columns() []string {
	return []string{t.ChunkID, t.RunID, t.TaskID, t.Stream, t.BatchIndex, t.Content, t.CreatedAt}
}

// AuditLogTable represents the 'moderation.audit_log' table.
type AuditLogTable struct {
	Table      string
	LogID      string
	TaskID     string
	Action     string
	Operator   string
	BeforeJSON string
	AfterJSON  string
	CreatedAt  string
}

// AuditLog is the schema definition for moderation.audit_log.
var AuditLog = AuditLogTable{
	Table:      "moderation.audit_log",
	LogID:      "log_id",
	TaskID:     "task_id",
	Action:     "action",
	Operator:   "operator",
	BeforeJSON: "before_json",
	AfterJSON:  "after_json",
	CreatedAt:  "created_at",
}

func (t AuditLogTable) Columns() []string {
	return []string{t.LogID, t.TaskID, t.Action, t.Operator, t.BeforeJSON, t.AfterJSON, t.CreatedAt}
}
