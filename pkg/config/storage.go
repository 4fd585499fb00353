package config

// StorageConfig configures artifact export.
type StorageConfig struct {
	Mode      string // local | s3
	LocalDir  string
	AWSRegion string
	Bucket    string
	Prefix    string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      getEnv("STORAGE_MODE", "local"),
		LocalDir:  getEnv("EXPORT_DIR", "./exports"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		Bucket:    getEnv("AWS_BUCKET", "mailcraft-exports"),
		Prefix:    getEnv("AWS_BUCKET_PREFIX", "emails"),
	}
}
