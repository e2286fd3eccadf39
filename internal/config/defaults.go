package config

const (
	defaultSettingsFile     = "settings.toml"
	defaultEngineCommand    = "miso-compute"
	defaultClusterSubmit    = "qsub"
	defaultBurnIn           = 500
	defaultLag              = 10
	defaultNumIters         = 5000
	defaultNumChains        = 6
	defaultNumProcessors    = 4
	defaultMinEventReads    = 20
	defaultStrand           = StrandUnstranded
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFilterResults    = true
	defaultEngineTimeoutSec = 0
)

// Library strandedness values accepted by data.strand.
const (
	StrandUnstranded  = "fr-unstranded"
	StrandFirstStrand = "fr-firststrand"
	StrandSecond      = "fr-secondstrand"
)

// Default returns Settings populated with repository defaults.
func Default() Settings {
	return Settings{
		Engine: Engine{
			Command:        defaultEngineCommand,
			TimeoutSeconds: defaultEngineTimeoutSec,
		},
		Cluster: Cluster{
			SubmitCommand: defaultClusterSubmit,
		},
		Sampler: Sampler{
			BurnIn:        defaultBurnIn,
			Lag:           defaultLag,
			NumIters:      defaultNumIters,
			NumChains:     defaultNumChains,
			NumProcessors: defaultNumProcessors,
		},
		Data: Data{
			FilterResults: defaultFilterResults,
			MinEventReads: defaultMinEventReads,
			Strand:        defaultStrand,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
