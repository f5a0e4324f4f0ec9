package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mockarchive "github.com/udisondev/galaxies/internal/archive/mock"
	"github.com/udisondev/galaxies/internal/game/combat"
	"github.com/udisondev/galaxies/internal/testutil"
)

func TestPostgresSink_Write(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mockarchive.NewMockEntryWriter(ctrl)
	s := NewPostgresSink(w)

	batch := []combat.Entry{entry(1), entry(2)}
	w.EXPECT().SaveEntries(gomock.Any(), batch).Return(nil)
	w.EXPECT().SaveEntries(gomock.Any(), gomock.Len(1)).Return(testutil.ErrSinkDown)

	assert.Equal(t, "postgres", s.Name())
	assert.NoError(t, s.Write(context.Background(), batch))
	assert.ErrorIs(t, s.Write(context.Background(), batch[:1]), testutil.ErrSinkDown)
}
