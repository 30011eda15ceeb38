package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_NewStore(t *testing.T) {
	if NewStore("").Authenticated() {
		t.Error("empty token should be anonymous")
	}
	s := NewStore("tok")
	if !s.Authenticated() {
		t.Error("non-empty token should be authenticated")
	}
	if s.Token() != "tok" {
		t.Errorf("Token() = %q, want %q", s.Token(), "tok")
	}
}

func TestStore_LoginLogout(t *testing.T) {
	s := NewStore("")

	var got []bool
	s.OnChange(func(a bool) { got = append(got, a) })

	s.Login("tok")
	s.Login("refreshed") // still signed in, no notification
	s.Logout()
	s.Logout()

	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
}

func TestStore_LoginEmptySignsOut(t *testing.T) {
	s := NewStore("tok")
	s.Login("")
	assert.False(t, s.Authenticated())
}

func TestStore_OnChangeCancel(t *testing.T) {
	s := NewStore("")

	calls := 0
	cancel := s.OnChange(func(bool) { calls++ })
	s.Login("tok")
	cancel()
	cancel()
	s.Logout()

	assert.Equal(t, 1, calls)
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := NewStore("")

	var seen bool
	s.OnChange(func(bool) { seen = s.Authenticated() })
	s.Login("tok")

	assert.True(t, seen, "listener runs after the change is visible")
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore("")
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			if i%2 == 0 {
				s.Login("tok")
			} else {
				s.Logout()
			}
			_ = s.Authenticated()
		})
	}
	wg.Wait()
}
