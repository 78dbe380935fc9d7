package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/xtding233/hoops-backend/internal/gacha"
)

// QuestType is the event a quest listens to.
type QuestType string

const (
	OpenPacks    QuestType = "OPEN_PACKS"
	CollectCards QuestType = "COLLECT_CARDS"
	WinWager     QuestType = "WIN_WAGER"
)

func (t QuestType) Valid() bool {
	switch t {
	case OpenPacks, CollectCards, WinWager:
		return true
	}
	return false
}

const (
	// BatchSize is how many quests a rotation hands out.
	BatchSize = 5
	// RefreshInterval is the quest rotation window.
	RefreshInterval = 24 * time.Hour
)

var (
	ErrQuestNotFound   = errors.New("quest not found")
	ErrQuestClaimed    = errors.New("quest already claimed")
	ErrQuestIncomplete = errors.New("quest not complete")
)

type Quest struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Type        QuestType `json:"type"`
	Target      int       `json:"target"`
	Current     int       `json:"current"`
	Reward      int       `json:"reward"`
	Claimed     bool      `json:"isClaimed"`
}

func (q Quest) Complete() bool { return q.Current >= q.Target }

// Template is a quest before it is handed out.
type Template struct {
	Description string    `json:"description" yaml:"description"`
	Type        QuestType `json:"type" yaml:"type"`
	Target      int       `json:"target" yaml:"target"`
	Reward      int       `json:"reward" yaml:"reward"`
}

// "Collect 3 Rare Cards" counts every collected card, not only rare ones.
var DefaultTemplates = []Template{
	{Description: "Open 3 Packs", Type: OpenPacks, Target: 3, Reward: 500},
	{Description: "Open 5 Packs", Type: OpenPacks, Target: 5, Reward: 1000},
	{Description: "Collect 5 Cards", Type: CollectCards, Target: 5, Reward: 500},
	{Description: "Collect 10 Cards", Type: CollectCards, Target: 10, Reward: 1200},
	{Description: "Win 1 Wager", Type: WinWager, Target: 1, Reward: 2000},
	{Description: "Collect 3 Rare Cards", Type: CollectCards, Target: 3, Reward: 1500},
}

// GenerateQuests shuffles a copy of the pool and hands out the first BatchSize
// templates with zero progress.
func GenerateQuests(rng gacha.RandomSource, templates []Template, now time.Time) []Quest {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	pool := append([]Template(nil), templates...)
	gacha.Shuffle(rng, len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := min(BatchSize, len(pool))
	stamp := now.UnixMilli()
	quests := make([]Quest, 0, n)
	for i := 0; i < n; i++ {
		t := pool[i]
		quests = append(quests, Quest{
			ID:          fmt.Sprintf("quest_%d_%d", stamp, i),
			Description: t.Description,
			Type:        t.Type,
			Target:      t.Target,
			Reward:      t.Reward,
		})
	}
	return quests
}

// Record adds amount to every open quest of the given type, capped at its target.
func Record(quests []Quest, typ QuestType, amount int) []Quest {
	out := make([]Quest, len(quests))
	copy(out, quests)
	if amount <= 0 {
		return out
	}
	for i := range out {
		q := &out[i]
		if q.Claimed || q.Type != typ || q.Current >= q.Target {
			continue
		}
		q.Current = min(q.Current+amount, q.Target)
	}
	return out
}

// ClaimQuest marks the quest claimed and returns its reward. The input slice is
// never modified.
func ClaimQuest(quests []Quest, id string) ([]Quest, int, error) {
	idx := -1
	for i, q := range quests {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return quests, 0, ErrQuestNotFound
	}
	q := quests[idx]
	if q.Claimed {
		return quests, 0, ErrQuestClaimed
	}
	if !q.Complete() {
		return quests, 0, ErrQuestIncomplete
	}
	out := make([]Quest, len(quests))
	copy(out, quests)
	out[idx].Claimed = true
	return out, q.Reward, nil
}
