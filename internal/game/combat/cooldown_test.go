package combat

import "testing"

func TestCooldownTracker(t *testing.T) {
	cd := NewCooldownTracker()

	cd.Start("hero", "fireball", 2)
	cd.Start("hero", "instant", 0)

	if cd.Ready("hero", "fireball") {
		t.Fatal("fireball should be on cooldown")
	}
	if !cd.Ready("hero", "instant") {
		t.Error("zero cooldown must be ignored")
	}
	if !cd.Ready("mage", "fireball") {
		t.Error("cooldowns are per actor")
	}

	cd.Tick(0.5)
	if got := cd.Remaining("hero", "fireball"); got != 1.5 {
		t.Errorf("remaining = %v, want 1.5", got)
	}

	cd.Tick(1.5)
	if !cd.Ready("hero", "fireball") {
		t.Error("fireball should be ready")
	}

	cd.Start("hero", "fireball", 5)
	cd.Start("hero", "heal", 5)
	cd.Clear("hero")
	if !cd.Ready("hero", "fireball") || !cd.Ready("hero", "heal") {
		t.Error("Clear should drop all cooldowns of the actor")
	}
}
