package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one monitor run so its log lines can be grouped.
	FieldRunID = "run_id"
	// FieldItemID is the standardized structured logging key for platform queue item identifiers.
	FieldItemID = "item_id"
	// FieldItemName is the display title of a queue item.
	FieldItemName = "item_name"
	// FieldPlatform carries the platform tag (radarr/sonarr).
	FieldPlatform = "platform"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to an operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType is the standardized key for the kind of decision being logged.
	FieldDecisionType = "decision_type"
	// FieldStrikes is the strike count after evaluation.
	FieldStrikes = "strikes"
)
