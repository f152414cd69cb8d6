package topology

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	SetupScript   = "setup.sh"
	DestroyScript = "destroy.sh"

	// terraform reads variable files from the dev environment directory
	envDevRel = "environments/dev"

	maxAncestors = 20
)

// Paths holds every resolved filesystem location the driver needs. Computed
// once after settings validation, read-only afterwards.
type Paths struct {
	RepoRoot string
	InfraDir string

	SetupScript   string
	DestroyScript string

	CredentialsTfvars string
	TerraformTfvars   string
}

// FindRepoRoot walks up from start until it finds a directory containing a
// .git marker. The walk is bounded so a stray start location cannot loop to
// the filesystem root forever.
func FindRepoRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for i := 0; i < maxAncestors; i++ {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return "", fmt.Errorf("could not locate the devops repo root (.git) walking up from %s: place the driver inside the devops repository", start)
}

// excluded reports whether any path segment is a version-control, tool-cache
// or dependency directory that must not be searched.
func excluded(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		switch strings.ToLower(part) {
		case ".git", ".terraform", "node_modules":
			return true
		}
	}
	return false
}

// pathDistance counts the non-shared trailing segments of both paths.
func pathDistance(a, b string) int {
	aParts := strings.Split(filepath.Clean(a), string(filepath.Separator))
	bParts := strings.Split(filepath.Clean(b), string(filepath.Separator))
	common := 0
	for i := 0; i < len(aParts) && i < len(bParts); i++ {
		if aParts[i] != bParts[i] {
			break
		}
		common++
	}
	return (len(aParts) - common) + (len(bParts) - common)
}

func findByName(root, name string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if excluded(path) && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == name && !excluded(path) {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

// Resolve locates the infra directory and both provisioning scripts under
// repoRoot. When one directory contains both scripts the shortest such
// directory wins. When the scripts are split across directories, the
// shallowest setup.sh is taken and the nearest destroy.sh is matched to it
// by path distance.
func Resolve(repoRoot string) (*Paths, error) {
	setupCandidates, err := findByName(repoRoot, SetupScript)
	if err != nil {
		return nil, err
	}
	destroyCandidates, err := findByName(repoRoot, DestroyScript)
	if err != nil {
		return nil, err
	}
	if len(setupCandidates) == 0 {
		return nil, fmt.Errorf("could not find %s under %s", SetupScript, repoRoot)
	}
	if len(destroyCandidates) == 0 {
		return nil, fmt.Errorf("could not find %s under %s", DestroyScript, repoRoot)
	}

	setupByDir := make(map[string]string)
	for _, p := range setupCandidates {
		setupByDir[filepath.Dir(p)] = p
	}
	destroyByDir := make(map[string]string)
	for _, p := range destroyCandidates {
		destroyByDir[filepath.Dir(p)] = p
	}

	var common []string
	for dir := range setupByDir {
		if _, ok := destroyByDir[dir]; ok {
			common = append(common, dir)
		}
	}

	var infraDir, setupSh, destroySh string
	if len(common) > 0 {
		sort.Slice(common, func(i, j int) bool {
			if len(common[i]) != len(common[j]) {
				return len(common[i]) < len(common[j])
			}
			return common[i] < common[j]
		})
		infraDir = common[0]
		setupSh = setupByDir[infraDir]
		destroySh = destroyByDir[infraDir]
	} else {
		// the scripts are expected to co-locate; degrade to the nearest pair
		sort.Slice(setupCandidates, func(i, j int) bool {
			if len(setupCandidates[i]) != len(setupCandidates[j]) {
				return len(setupCandidates[i]) < len(setupCandidates[j])
			}
			return setupCandidates[i] < setupCandidates[j]
		})
		setupSh = setupCandidates[0]
		infraDir = filepath.Dir(setupSh)
		destroySh = destroyCandidates[0]
		best := pathDistance(infraDir, filepath.Dir(destroySh))
		for _, p := range destroyCandidates[1:] {
			if d := pathDistance(infraDir, filepath.Dir(p)); d < best {
				best = d
				destroySh = p
			}
		}
	}

	return &Paths{
		RepoRoot:          repoRoot,
		InfraDir:          infraDir,
		SetupScript:       setupSh,
		DestroyScript:     destroySh,
		CredentialsTfvars: filepath.Join(infraDir, envDevRel, "credentials.auto.tfvars"),
		TerraformTfvars:   filepath.Join(infraDir, envDevRel, "terraform.tfvars"),
	}, nil
}
