package config

const (
	defaultLogDir          = "~/.local/share/diptych/logs"
	defaultStrictDecode    = true
	defaultAlgorithm       = "average"
	defaultThreshold       = 1
	defaultExifToolBinary  = "exiftool"
	defaultExifToolCharset = "cp1252"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir(),
		},
		Scan: Scan{
			StrictDecode: defaultStrictDecode,
		},
		Matcher: Matcher{
			Algorithm: defaultAlgorithm,
			Threshold: defaultThreshold,
		},
		ExifTool: ExifTool{
			Binary:  defaultExifToolBinary,
			Charset: defaultExifToolCharset,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
