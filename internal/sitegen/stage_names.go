package sitegen

// StageName is a strongly-typed identifier for a generation stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageSyncLatest        StageName = "sync_latest"
	StageSyncVersioned     StageName = "sync_versioned"
	StagePruneStale        StageName = "prune_stale"
	StageVersionsJSON      StageName = "versions_json"
	StageSidebars          StageName = "sidebars"
	StageVersionedSidebars StageName = "versioned_sidebars"
	StageRedirects         StageName = "redirects"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

func defaultStages() []StageDef {
	return []StageDef{
		{StageSyncLatest, stageSyncLatest},
		{StageSyncVersioned, stageSyncVersioned},
		{StagePruneStale, stagePruneStale},
		{StageVersionsJSON, stageVersionsJSON},
		{StageSidebars, stageSidebars},
		{StageVersionedSidebars, stageVersionedSidebars},
		{StageRedirects, stageRedirects},
	}
}
