package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/superyngo/wenget-bucket/internal/github"
	"github.com/superyngo/wenget-bucket/internal/logger"
	"github.com/superyngo/wenget-bucket/internal/manifest"
	"github.com/superyngo/wenget-bucket/internal/platform"
	"github.com/superyngo/wenget-bucket/internal/source"
)

var (
	// errInvalidRepoURL marks a source line that is not a repository URL.
	errInvalidRepoURL = errors.New("invalid repository URL")
	// errNoReleases marks a repository without a published release.
	errNoReleases = errors.New("no releases found")
	// errNoUsableAssets marks a release whose assets classify to nothing.
	errNoUsableAssets = errors.New("no usable binary assets")
)

// resolvePackage turns one repository URL into a package record.
// Every returned error is a per-source condition: the caller logs it and
// moves on to the next source.
func (s *Service) resolvePackage(ctx context.Context, url string) (*manifest.Package, error) {
	owner, repo, ok := source.ParseRepoURL(url)
	if !ok {
		return nil, errInvalidRepoURL
	}

	repository, err := s.client.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetch repository %s/%s: %w", owner, repo, err)
	}

	release, err := s.client.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			return nil, fmt.Errorf("%w for %s/%s", errNoReleases, owner, repo)
		}

		return nil, fmt.Errorf("fetch latest release of %s/%s: %w", owner, repo, err)
	}

	platforms := s.selectAssets(ctx, release.Assets)
	if len(platforms) == 0 {
		return nil, fmt.Errorf("%w for %s/%s", errNoUsableAssets, owner, repo)
	}

	var license *string
	if repository.License != nil {
		spdx := repository.License.SPDXID
		license = &spdx
	}

	return &manifest.Package{
		Name:        repository.Name,
		Description: repository.Description,
		Repo:        repository.HTMLURL,
		Homepage:    repository.Homepage,
		License:     license,
		Platforms:   platforms,
	}, nil
}

// selectAssets folds a release's asset list into the best asset per platform
// key. A strictly greater toolchain priority replaces the current winner;
// equal priority keeps the first-seen asset, so ties break by order of
// appearance.
func (s *Service) selectAssets(ctx context.Context, assets []github.Asset) map[string]manifest.PlatformAsset {
	winners := make(map[string]manifest.PlatformAsset)
	priorities := make(map[string]int)

	for _, asset := range assets {
		key, ok := platform.Detect(asset.Name)
		if !ok {
			logger.Debugf(ctx, "Asset %s is not classifiable, skipping", asset.Name)
			continue
		}

		if !platform.HasArchitecture(key) {
			logger.Warnf(ctx, "No architecture detected: %s -> %s", asset.Name, key)
		}

		priority := platform.AssetPriority(asset.Name, key)
		if priority > priorities[key] {
			winners[key] = manifest.PlatformAsset{
				URL:  asset.BrowserDownloadURL,
				Size: asset.Size,
			}
			priorities[key] = priority
		}
	}

	return winners
}
