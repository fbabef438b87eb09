package entity

import (
	"errors"
	"testing"
	"time"
)

func TestRosterAdd(t *testing.T) {
	r := NewRoster(2)
	now := time.Unix(1700000000, 0)

	enemy := newTestCombatant(5)
	enemy.Side = SideEnemy
	enemy.Encounter = &Encounter{Reward: 10}

	i, err := r.Add(enemy, now)
	if err != nil || i != 0 {
		t.Fatalf("Add() = %d, %v", i, err)
	}
	if enemy.Side != SidePlayer || enemy.Encounter != nil {
		t.Error("Add should convert the creature to the player side")
	}
	if !r.FirstAcquired["pikachu"].Equal(now) {
		t.Errorf("FirstAcquired = %v, want %v", r.FirstAcquired["pikachu"], now)
	}

	r.Add(newTestCombatant(3), now.Add(time.Hour))
	if !r.FirstAcquired["pikachu"].Equal(now) {
		t.Error("FirstAcquired should keep the earliest time")
	}

	if _, err := r.Add(newTestCombatant(3), now); !errors.Is(err, ErrRosterFull) {
		t.Errorf("Add() past capacity error = %v, want ErrRosterFull", err)
	}
}

func TestRosterNextAlive(t *testing.T) {
	r := NewRoster(0)
	now := time.Now()
	for i := 0; i < 4; i++ {
		r.Add(newTestCombatant(5), now)
	}

	r.SetActive(2)
	r.Members[2].TakeDamage(1000)
	r.Members[3].TakeDamage(1000)

	next, ok := r.NextAlive()
	if !ok || next != 0 {
		t.Errorf("NextAlive() = %d, %v, want 0 (wraps around)", next, ok)
	}

	r.Members[0].TakeDamage(1000)
	r.Members[1].TakeDamage(1000)
	if _, ok := r.NextAlive(); ok {
		t.Error("NextAlive() should fail when everyone fainted")
	}
	if !r.AllFainted() {
		t.Error("AllFainted() should be true")
	}
}

func TestRosterLookups(t *testing.T) {
	r := NewRoster(0)
	if r.ActiveMember() != nil {
		t.Error("empty roster should have no active member")
	}
	r.Add(newTestCombatant(5), time.Now())

	if !r.Owns("pikachu") || r.Owns("eevee") {
		t.Error("Owns() mismatch")
	}
	if err := r.SetActive(3); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("SetActive(3) error = %v, want ErrInvalidIndex", err)
	}
	if r.Get(0) != r.ActiveMember() {
		t.Error("Get(0) should be the active member")
	}
	if err := r.Replace(5, newTestCombatant(1), time.Now()); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("Replace(5) error = %v, want ErrInvalidIndex", err)
	}
}
