package source

import (
	"io/fs"

	"github.com/JonMunkholm/csvasset/internal/config"
)

// Build wires the resolution chain from configuration: local data directory
// first, then bundled assets, then the remote bucket.
//
// bundled may be nil when the binary ships without assets. remote is only
// used when cfg names a bucket.
func Build(cfg config.SourceConfig, bundled fs.FS, remote ObjectGetter) *Resolver {
	sources := []Source{
		NewLocalSource(cfg.DataDir, cfg.DataOffset, cfg.MaxBytes),
	}

	if bundled != nil {
		sources = append(sources, &AssetSource{
			Assets:   bundled,
			Root:     cfg.AssetDir,
			CacheDir: cfg.CacheDir,
			MaxBytes: cfg.MaxBytes,
		})
	}

	if cfg.RemoteEnabled() && remote != nil {
		sources = append(sources, &S3Source{
			Client:   remote,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			CacheDir: cfg.CacheDir,
			MaxBytes: cfg.MaxBytes,
		})
	}

	return NewResolver(sources...)
}
