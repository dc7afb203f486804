package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoonb/archivex"

	"github.com/itaimoorali/sys-setup/internal/execx"
	"github.com/itaimoorali/sys-setup/internal/listfile"
	"github.com/itaimoorali/sys-setup/internal/logger"
)

// DotFiles clones (or updates) the personal dotfiles repository and symlinks
// its files into the home directory. Pre-existing regular files are backed up
// to a timestamped directory before being replaced; correct symlinks are left
// untouched so repeated runs are no-ops.
type DotFiles struct {
	List   string
	LogDir string
	Delay  time.Duration

	RepoURL string // clone URL, required only when RepoDir is absent
	RepoDir string // local checkout
	Entry   string // file that must exist inside the checkout

	Profile    string // shell profile (rc file) receiving the source line
	SourceLine string // line ensured in the profile, at most once

	BackupDir string // root for per-run timestamped backup directories
	Home      string // directory the symlinks are created in

	Exec execx.Runner
}

func (d DotFiles) Name() string { return "Dot files" }

// Run performs, in order: repository clone/update, structural verification,
// shell profile source line, per-file backup and symlink creation, and a
// final report-only verification pass over the expected symlinks.
func (d DotFiles) Run(ctx context.Context) error {
	if err := d.syncRepo(ctx); err != nil {
		return err
	}

	entry := filepath.Join(d.RepoDir, d.Entry)
	if _, err := os.Stat(entry); err != nil {
		return fmt.Errorf("dotfiles repo is missing required file %s", entry)
	}

	if err := d.ensureSourceLine(); err != nil {
		return err
	}

	items, err := listfile.Read(d.List)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("list file %s not found: create it with one dotfile name per line (# for comments)", d.List)
		}
		return fmt.Errorf("read list file %s: %w", d.List, err)
	}
	if len(items) == 0 {
		logger.Info("[INFO] %s: %s has no entries, nothing to do\n", d.Name(), d.List)
		return nil
	}

	log, err := openLog(filepath.Join(d.LogDir, "dot-files.log"))
	if err != nil {
		return err
	}
	defer log.Close()

	// One backup directory per run; only created when something needs it.
	backupRoot := filepath.Join(d.BackupDir, timestamp())
	backedUp := false

	var linked, already, failed int
	for i, item := range items {
		if i > 0 && d.Delay > 0 {
			time.Sleep(d.Delay)
		}

		src := filepath.Join(d.RepoDir, item)
		if _, err := os.Stat(src); err != nil {
			// Listed but not present in the repo: warn and move on.
			logger.Warn("[WARN] %s is listed but missing from %s, skipping\n", item, d.RepoDir)
			fmt.Fprintf(log, "WARNING: missing source %s\n", src)
			continue
		}

		outcome := d.linkFile(item, src, backupRoot, &backedUp)
		switch outcome {
		case execx.Succeeded:
			linked++
			logger.Info("[INFO] Linked %s\n", item)
		case execx.AlreadyInstalled:
			already++
			logger.Info("[INFO] %s is already linked, skipping\n", item)
		default:
			failed++
		}
		fmt.Fprintf(log, "%s: %s\n", outcome, item)
	}

	d.verifyLinks(items, log)

	if backedUp {
		d.archiveBackups(backupRoot)
	}

	logger.Info("[INFO] %s: processed %d\n", d.Name(), len(items))
	logger.Info("[INFO] %s: succeeded %d\n", d.Name(), linked)
	logger.Info("[INFO] %s: already installed %d\n", d.Name(), already)
	fmt.Fprintf(log, "Processed: %d\nSucceeded: %d\nAlready installed: %d\n", len(items), linked, already)

	if failed > 0 {
		return fmt.Errorf("%d of %d dotfiles failed, see %s", failed, len(items), filepath.Join(d.LogDir, "dot-files.log"))
	}
	return nil
}

// syncRepo clones the dotfiles repository if the checkout is absent, or
// pulls the latest changes if it is present. Both are fatal on failure.
func (d DotFiles) syncRepo(ctx context.Context) error {
	if _, err := d.Exec.LookPath("git"); err != nil {
		return fmt.Errorf("git not found in PATH: install it (e.g. xcode-select --install) first")
	}

	if _, err := os.Stat(filepath.Join(d.RepoDir, ".git")); err == nil {
		logger.Info("[INFO] Updating dotfiles repo in %s...\n", d.RepoDir)
		out, err := d.Exec.Run(ctx, "git", "-C", d.RepoDir, "pull", "--ff-only")
		if err != nil {
			return fmt.Errorf("git pull in %s failed: %w\n%s", d.RepoDir, err, out)
		}
		logger.Debug("[DEBUG] git pull output:\n%s\n", out)
		return nil
	}

	if d.RepoURL == "" {
		return fmt.Errorf("no dotfiles checkout at %s and no repo URL configured: set setup.dotfiles_repo in setup.yaml", d.RepoDir)
	}
	logger.Info("[INFO] Cloning %s into %s...\n", d.RepoURL, d.RepoDir)
	out, err := d.Exec.Run(ctx, "git", "clone", d.RepoURL, d.RepoDir)
	if err != nil {
		return fmt.Errorf("git clone %s failed: %w\n%s", d.RepoURL, err, out)
	}
	logger.Debug("[DEBUG] git clone output:\n%s\n", out)
	return nil
}

// ensureSourceLine makes sure the shell profile sources the dotfiles profile.
// The check is a substring match, so repeated runs never duplicate the line.
// The profile is backed up before its first modification.
func (d DotFiles) ensureSourceLine() error {
	if d.SourceLine == "" {
		return nil
	}

	raw, err := os.ReadFile(d.Profile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read shell profile %s: %w", d.Profile, err)
	}
	if strings.Contains(string(raw), d.SourceLine) {
		logger.Debug("[DEBUG] Source line already present in %s\n", d.Profile)
		return nil
	}

	if len(raw) > 0 {
		backup := d.Profile + ".backup-" + timestamp()
		if err := copyFile(d.Profile, backup); err != nil {
			return fmt.Errorf("back up shell profile: %w", err)
		}
		logger.Info("[INFO] Backed up %s to %s\n", d.Profile, backup)
	}

	f, err := os.OpenFile(d.Profile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open shell profile %s: %w", d.Profile, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "\n%s\n", d.SourceLine); err != nil {
		return fmt.Errorf("append source line to %s: %w", d.Profile, err)
	}
	logger.Info("[INFO] Added source line to %s\n", d.Profile)
	return nil
}

// linkFile ensures Home/item is a symlink to src. A correct existing symlink
// is left untouched. A pre-existing regular file is copied into backupRoot
// before it is removed; a wrong symlink is just removed.
func (d DotFiles) linkFile(item, src, backupRoot string, backedUp *bool) execx.Outcome {
	dst := filepath.Join(d.Home, item)

	if fi, err := os.Lstat(dst); err == nil {
		if fi.Mode()&os.ModeSymlink != 0 {
			if cur, rerr := os.Readlink(dst); rerr == nil && cur == src {
				return execx.AlreadyInstalled
			}
		} else {
			backup := filepath.Join(backupRoot, item)
			if cerr := copyFile(dst, backup); cerr != nil {
				logger.Error("[ERROR] Failed to back up %s: %v\n", dst, cerr)
				return execx.Failed
			}
			*backedUp = true
			logger.Info("[INFO] Backed up %s to %s\n", dst, backup)
		}
		if rerr := os.RemoveAll(dst); rerr != nil {
			logger.Error("[ERROR] Failed to remove %s: %v\n", dst, rerr)
			return execx.Failed
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		logger.Error("[ERROR] Failed to create directory for %s: %v\n", dst, err)
		return execx.Failed
	}
	if err := os.Symlink(src, dst); err != nil {
		logger.Error("[ERROR] Failed to link %s -> %s: %v\n", dst, src, err)
		return execx.Failed
	}
	return execx.Succeeded
}

// verifyLinks re-reads every expected symlink and classifies it verified or
// broken. Purely for reporting: a broken link is never repaired here.
func (d DotFiles) verifyLinks(items []string, log *os.File) {
	for _, item := range items {
		src := filepath.Join(d.RepoDir, item)
		dst := filepath.Join(d.Home, item)

		cur, err := os.Readlink(dst)
		if err != nil || cur != src {
			logger.Warn("[WARN] %s is not a link to %s\n", dst, src)
			fmt.Fprintf(log, "BROKEN: %s\n", item)
			continue
		}
		if _, err := os.Stat(src); err != nil {
			logger.Warn("[WARN] %s points at missing %s\n", dst, src)
			fmt.Fprintf(log, "BROKEN: %s\n", item)
			continue
		}
		logger.Debug("[DEBUG] Verified %s -> %s\n", dst, src)
		fmt.Fprintf(log, "VERIFIED: %s\n", item)
	}
}

// archiveBackups packs the run's backup directory into a sibling tar.gz so a
// single file captures everything that was replaced. Failure to archive is a
// warning only, the plain backup directory is still there.
func (d DotFiles) archiveBackups(backupRoot string) {
	archive := backupRoot + ".tar.gz"
	tar := new(archivex.TarFile)
	if err := tar.Create(archive); err != nil {
		logger.Warn("[WARN] Could not create backup archive %s: %v\n", archive, err)
		return
	}
	if err := tar.AddAll(backupRoot, false); err != nil {
		logger.Warn("[WARN] Could not archive backups: %v\n", err)
		tar.Close()
		return
	}
	if err := tar.Close(); err != nil {
		logger.Warn("[WARN] Could not finalize backup archive: %v\n", err)
		return
	}
	logger.Info("[INFO] Archived replaced files to %s\n", archive)
}
