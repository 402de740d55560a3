package config

const (
	defaultFramesDir          = "~/telemetry/frames"
	defaultTelemetryDir       = "~/telemetry/logs"
	defaultLogDir             = "~/.local/share/scribe/logs"
	defaultPollInterval       = 1
	defaultErrorRetryInterval = 10
	defaultDetectionLog       = "ai_log.txt"
	defaultSidecarFile        = "image_info.json"
	defaultJournalFile        = "log.txt"
	defaultLocationID         = 2
	defaultRobotID            = 2
	defaultObjectID           = 2
	defaultActorID            = 2
	defaultHostStatsInterval  = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			FramesDir:    defaultFramesDir,
			TelemetryDir: defaultTelemetryDir,
			LogDir:       defaultLogDir,
		},
		Ingest: Ingest{
			PollInterval:       defaultPollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			DetectionLog:       defaultDetectionLog,
			SidecarFile:        defaultSidecarFile,
			JournalFile:        defaultJournalFile,
			LocationID:         defaultLocationID,
			RobotID:            defaultRobotID,
			ObjectID:           defaultObjectID,
			ActorID:            defaultActorID,
		},
		HostStats: HostStats{
			Enabled:  false,
			Interval: defaultHostStatsInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
