package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"loyalty_app/internal/domain"
)

func TestSignupCreatesCharacter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acct := f.signup(t)

	snap, err := f.character.Get(ctx, acct.ID)
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if snap.Kind != domain.KindEgg || snap.Level != 1 || snap.Experience != 0 || snap.MaxExperience != 100 {
		t.Fatalf("unexpected starting character %+v", snap)
	}

	if _, err := f.auth.Signup(ctx, acct.Username, "password2"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("duplicate signup error = %v; want ErrUsernameTaken", err)
	}
	if _, err := f.auth.Login(ctx, acct.Username, "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password error = %v; want ErrInvalidCredentials", err)
	}
	if _, err := f.auth.Login(ctx, "no_such_user_x", "password1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v; want ErrInvalidCredentials", err)
	}
	if got, err := f.auth.Login(ctx, acct.Username, "password1"); err != nil || got.ID != acct.ID {
		t.Fatalf("login = %v, %v", got, err)
	}
}

func TestFullDayOfActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acct := f.signup(t)

	for i, want := range []int{2, 1, 0} {
		res, err := f.character.CompleteGame(ctx, acct.ID)
		if err != nil {
			t.Fatalf("game %d: %v", i+1, err)
		}
		if res.Remaining != want || res.DailyCount != i+1 {
			t.Fatalf("game %d: remaining=%d count=%d", i+1, res.Remaining, res.DailyCount)
		}
	}
	if _, err := f.character.CompleteGame(ctx, acct.ID); !errors.Is(err, domain.ErrDailyLimitExceeded) {
		t.Fatalf("4th game error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.character.Pet(ctx, acct.ID); err != nil {
			t.Fatalf("pet %d: %v", i+1, err)
		}
	}

	if _, err := f.character.Feed(ctx, acct.ID); !errors.Is(err, domain.ErrNoConsumable) {
		t.Fatalf("feed without items error = %v", err)
	}
	if _, err := f.reward.CompleteWatching(ctx, acct.ID); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := f.reward.CompleteWatching(ctx, acct.ID); !errors.Is(err, domain.ErrAlreadyCompleted) {
		t.Fatalf("second watch error = %v", err)
	}

	var last int64
	for i := 0; i < 3; i++ {
		res, err := f.character.Feed(ctx, acct.ID)
		if err != nil {
			t.Fatalf("feed %d: %v", i+1, err)
		}
		if res.ConsumedItem != domain.ItemPersimmon {
			t.Fatalf("feed %d consumed %s", i+1, res.ConsumedItem)
		}
		last = res.Bonus
	}
	if last != domain.AllCompleteBonus {
		t.Fatalf("bonus on final feed = %d; want %d", last, domain.AllCompleteBonus)
	}

	// 50+50+70 games, 3x20 pets, 3x20 feeds, 20 bonus = 310 = 100 (L1) + 200 (L2) + 10
	snap, err := f.character.Get(ctx, acct.ID)
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if snap.Kind != domain.KindDuck || snap.Level != 3 || snap.Experience != 10 || snap.MaxExperience != 300 {
		t.Fatalf("character = %+v; want DUCK level 3 exp 10/300", snap)
	}

	rem, err := f.character.Remaining(ctx, acct.ID)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if rem.Games != 0 || rem.Pets != 0 || rem.Feeds != 0 || rem.BonusAvailable {
		t.Fatalf("remaining = %+v", rem)
	}

	// next calendar day resets the counters
	f.now = f.now.AddDate(0, 0, 1)
	res, err := f.character.Pet(ctx, acct.ID)
	if err != nil {
		t.Fatalf("pet next day: %v", err)
	}
	if res.Remaining != 2 || res.Bonus != 0 {
		t.Fatalf("next day pet = %+v", res)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acct := f.signup(t)
	f.fund(t, acct.ID, domain.Charge100)

	if err := f.auth.Delete(ctx, acct.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.character.Get(ctx, acct.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("character after delete error = %v", err)
	}
	if err := f.auth.Delete(ctx, acct.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete error = %v", err)
	}
}

func TestConcurrentGamesRespectCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acct := f.signup(t)

	const callers = 10
	var (
		wg                             sync.WaitGroup
		mu                             sync.Mutex
		succeeded, limited, conflicted int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.character.CompleteGame(ctx, acct.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDailyLimitExceeded):
				limited++
			case errors.Is(err, domain.ErrConflict):
				conflicted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded+limited+conflicted != callers {
		t.Fatalf("outcomes %d+%d+%d do not add up to %d", succeeded, limited, conflicted, callers)
	}
	if conflicted == 0 && succeeded != domain.DailyCaps[domain.ActivityGame] {
		t.Fatalf("succeeded = %d; want exactly %d", succeeded, domain.DailyCaps[domain.ActivityGame])
	}
	if succeeded > domain.DailyCaps[domain.ActivityGame] {
		t.Fatalf("succeeded = %d; cap exceeded", succeeded)
	}

	var gameCount int
	if err := f.db.QueryRow(ctx, `SELECT game_count FROM accounts WHERE id = $1`, acct.ID).Scan(&gameCount); err != nil {
		t.Fatalf("read game_count: %v", err)
	}
	if gameCount != succeeded {
		t.Fatalf("game_count = %d; want %d", gameCount, succeeded)
	}

	// three games give 50+50+70: evolution at 100, then 70 into level 2
	if succeeded == 3 {
		snap, err := f.character.Get(ctx, acct.ID)
		if err != nil {
			t.Fatalf("get character: %v", err)
		}
		if snap.Kind != domain.KindDuck || snap.Level != 2 || snap.Experience != 70 {
			t.Fatalf("character = %+v; want DUCK level 2 exp 70", snap)
		}
	}
}
