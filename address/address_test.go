// address/address_test.go

package address

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veekshithcb/Qkart-Frontend/notify"
)

type fakeAddressAPI struct {
	all   []Address
	err   error
	calls int
}

func (f *fakeAddressAPI) Addresses(ctx context.Context, token string) ([]Address, error) {
	f.calls++
	return f.all, f.err
}

func (f *fakeAddressAPI) AddAddress(ctx context.Context, token, text string) ([]Address, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.all = append(f.all, Address{ID: "generated", Text: text})
	return f.all, nil
}

func (f *fakeAddressAPI) DeleteAddress(ctx context.Context, token, addressID string) ([]Address, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	next := make([]Address, 0, len(f.all))
	for _, a := range f.all {
		if a.ID != addressID {
			next = append(next, a)
		}
	}
	f.all = next
	return f.all, nil
}

// TestManagerAdd_ReplacesCollectionAndClearsDraft verifies the server response
// becomes the new collection and the draft is reset.
func TestManagerAdd_ReplacesCollectionAndClearsDraft(t *testing.T) {
	t.Parallel()

	fake := &fakeAddressAPI{}
	m := NewManager(fake, &notify.Recorder{})

	m.StartDraft()
	m.SetDraftText("New address\nKolam lane, Chennai")
	all, err := m.Add(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "New address\nKolam lane, Chennai", all[0].Text)
	assert.Equal(t, all, m.State().All)
	assert.Equal(t, Draft{}, m.Draft())
}

// TestManagerAdd_FailureKeepsStateAndDraft verifies a failed submission leaves
// everything untouched and surfaces the server message.
func TestManagerAdd_FailureKeepsStateAndDraft(t *testing.T) {
	t.Parallel()

	fake := &fakeAddressAPI{err: errors.New("connection refused")}
	rec := &notify.Recorder{}
	m := NewManager(fake, rec)

	m.StartDraft()
	m.SetDraftText("somewhere")
	_, err := m.Add(context.Background(), "tok")

	require.Error(t, err)
	assert.Empty(t, m.State().All)
	assert.Equal(t, Draft{IsEditing: true, Text: "somewhere"}, m.Draft())
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Could not add this address. Check that the backend is running, reachable and returns valid JSON.", rec.Events[0].Message)
	assert.Equal(t, notify.SeverityError, rec.Events[0].Severity)
}

// TestManagerDelete_ClearsDanglingSelection verifies deleting the selected
// address also clears the selection.
func TestManagerDelete_ClearsDanglingSelection(t *testing.T) {
	t.Parallel()

	fake := &fakeAddressAPI{all: []Address{{ID: "a1", Text: "one"}, {ID: "a2", Text: "two"}}}
	m := NewManager(fake, &notify.Recorder{})
	_, err := m.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	m.Select("a1")
	_, err = m.Delete(context.Background(), "tok", "a1")

	require.NoError(t, err)
	state := m.State()
	require.Len(t, state.All, 1)
	assert.Equal(t, "a2", state.All[0].ID)
	assert.Equal(t, "", state.SelectedID)
}

// TestManagerDelete_KeepsUnrelatedSelection verifies deleting another address
// leaves the current selection alone.
func TestManagerDelete_KeepsUnrelatedSelection(t *testing.T) {
	t.Parallel()

	fake := &fakeAddressAPI{all: []Address{{ID: "a1", Text: "one"}, {ID: "a2", Text: "two"}}}
	m := NewManager(fake, &notify.Recorder{})
	_, err := m.Refresh(context.Background(), "tok")
	require.NoError(t, err)

	m.Select("a2")
	_, err = m.Delete(context.Background(), "tok", "a1")

	require.NoError(t, err)
	assert.Equal(t, "a2", m.State().SelectedID)
}

// TestManagerSelect_NoValidation verifies Select trusts the caller-provided id.
func TestManagerSelect_NoValidation(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakeAddressAPI{}, &notify.Recorder{})
	m.Select("whatever")
	assert.Equal(t, "whatever", m.State().SelectedID)
}

// TestManagerRefresh_Failure verifies a fetch failure notifies and keeps state.
func TestManagerRefresh_Failure(t *testing.T) {
	t.Parallel()

	fake := &fakeAddressAPI{err: errors.New("boom")}
	rec := &notify.Recorder{}
	m := NewManager(fake, rec)

	_, err := m.Refresh(context.Background(), "tok")

	require.Error(t, err)
	assert.Empty(t, m.State().All)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Could not fetch addresses. Check that the backend is running, reachable and returns valid JSON.", rec.Events[0].Message)
}
