package httptransport

import "expvar"

var (
	metricParticipantCreateTotal = expvar.NewInt("participant_create_total")

	metricSessionStartTotal  = expvar.NewInt("session_start_total")
	metricSessionStartErrors = expvar.NewInt("session_start_errors_total")
	metricSessionEndTotal    = expvar.NewInt("session_end_total")

	metricIngestBatchTotal      = expvar.NewInt("ingest_batch_total")
	metricIngestEventsTotal     = expvar.NewInt("ingest_events_total")
	metricIngestDuplicateTotal  = expvar.NewInt("ingest_duplicate_batch_total")
	metricIngestRejectedTotal   = expvar.NewInt("ingest_rejected_token_total")
	metricIngestForbiddenTotal  = expvar.NewInt("ingest_forbidden_total")
	metricIngestBatchErrorTotal = expvar.NewInt("ingest_batch_errors_total")

	metricGameplaySubmitTotal  = expvar.NewInt("gameplay_submit_total")
	metricGameplaySkippedTotal = expvar.NewInt("gameplay_skipped_total")
	metricGameplayErrorsTotal  = expvar.NewInt("gameplay_errors_total")
	metricRankQueryTotal       = expvar.NewInt("rank_query_total")

	metricReplayResolveTotal  = expvar.NewInt("replay_resolve_total")
	metricReplayDownloadTotal = expvar.NewInt("replay_download_total")
	metricReplayBlobMissing   = expvar.NewInt("replay_blob_missing_total")
)
