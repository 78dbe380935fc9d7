package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths locates the catalog layers under one directory.
type Paths struct {
	BaseDir string
}

func (p Paths) CatalogPath() string {
	return filepath.Join(p.BaseDir, "catalog.yaml")
}

func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

// Files lists every layer path for a profile, in merge order.
func (p Paths) Files(profile string) []string {
	files := []string{p.CatalogPath()}
	if profile != "" {
		files = append(files, p.ProfilePath(profile))
	}
	return files
}

// Loader reads YAML layers and merges built-in defaults ← catalog ← profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]Catalog // key: profile, "" for no profile
}

func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]Catalog),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged reads and merges the YAML layers without normalizing them.
// Missing files are empty layers; an empty BaseDir reads nothing.
func (l *Loader) LoadMerged(profile string) (RawCatalog, error) {
	if l.paths.BaseDir == "" {
		return RawCatalog{}, nil
	}
	base, err := readYAML(l.paths.CatalogPath())
	if err != nil {
		return RawCatalog{}, fmt.Errorf("read catalog: %w", err)
	}
	if profile == "" {
		return base, nil
	}
	prof, err := readYAML(l.paths.ProfilePath(profile))
	if err != nil {
		return RawCatalog{}, fmt.Errorf("read profile %s: %w", profile, err)
	}
	return mergeRaw(base, prof), nil
}

// Load returns the validated catalog for a profile, cached until Invalidate.
func (l *Loader) Load(profile string) (Catalog, error) {
	l.mu.RLock()
	if cat, ok := l.cache[profile]; ok {
		l.mu.RUnlock()
		return cat, nil
	}
	l.mu.RUnlock()

	raw, err := l.LoadMerged(profile)
	if err != nil {
		return Catalog{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return Catalog{}, err
	}
	cat, err := Normalize(raw)
	if err != nil {
		return Catalog{}, err
	}

	l.mu.Lock()
	l.cache[profile] = cat
	l.mu.Unlock()
	return cat, nil
}

// Invalidate clears the cache. Call after the watcher sees a change.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]Catalog)
}

// readYAML loads one layer. Missing files return an empty layer, no error.
func readYAML(path string) (RawCatalog, error) {
	var cfg RawCatalog
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawCatalog{}, nil
		}
		return RawCatalog{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawCatalog{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// mergeRaw lays b over a. Set pointers override; non-empty lists replace,
// except packs, which merge by id.
func mergeRaw(a, b RawCatalog) RawCatalog {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	e := &out.Economy
	if b.Economy.InitialCoins != nil {
		e.InitialCoins = b.Economy.InitialCoins
	}
	if b.Economy.ScoutCost != nil {
		e.ScoutCost = b.Economy.ScoutCost
	}
	if b.Economy.AuctionSize != nil {
		e.AuctionSize = b.Economy.AuctionSize
	}
	if b.Economy.AuctionRefresh != nil {
		e.AuctionRefresh = b.Economy.AuctionRefresh
	}
	if b.Economy.QuestRefresh != nil {
		e.QuestRefresh = b.Economy.QuestRefresh
	}
	if b.Economy.WheelCooldown != nil {
		e.WheelCooldown = b.Economy.WheelCooldown
	}
	if b.Economy.PackRetries != nil {
		e.PackRetries = b.Economy.PackRetries
	}
	if b.Economy.GuaranteeRetries != nil {
		e.GuaranteeRetries = b.Economy.GuaranteeRetries
	}

	if len(b.Packs) > 0 {
		out.Packs = mergePacks(a.Packs, b.Packs)
	}
	if len(b.Roster) > 0 {
		out.Roster = append([]RawPlayer(nil), b.Roster...)
	}
	if len(b.SetTiers) > 0 {
		out.SetTiers = append([]RawTier(nil), b.SetTiers...)
	}
	if len(b.Wheel) > 0 {
		out.Wheel = append([]RawSegment(nil), b.Wheel...)
	}
	if len(b.Quests) > 0 {
		out.Quests = append([]RawQuest(nil), b.Quests...)
	}
	if len(b.Sets) > 0 {
		out.Sets = append([]RawSet(nil), b.Sets...)
	}
	return out
}

func mergePacks(a, b []RawPack) []RawPack {
	out := append([]RawPack(nil), a...)
	for _, p := range b {
		replaced := false
		for i := range out {
			if out[i].ID == p.ID {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}
