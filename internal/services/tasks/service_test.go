package tasks

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveTasks(ctx context.Context, ownerID bson.ObjectID, list []Task) error {
	args := m.Called(ctx, ownerID, list)
	return args.Error(0)
}

func someTasks(n int) []Task {
	list := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		list = append(list, Task{
			ID:        bson.NewObjectID(),
			Title:     "task",
			CreatedAt: time.Now().UTC(),
		})
	}
	return list
}

func TestServiceAdd(t *testing.T) {
	ownerID := bson.NewObjectID()
	current := someTasks(2)

	repo := new(MockRepository)
	repo.On("SaveTasks", mock.Anything, ownerID, mock.MatchedBy(func(list []Task) bool {
		return len(list) == 3
	})).Return(nil)

	service := NewService(repo, silentLogger)
	task, err := service.Add(context.Background(), ownerID, current, AddTaskRequest{
		Title:       "buy milk",
		Description: "2%",
	})
	require.NoError(t, err)
	require.NotNil(t, task)

	assert.False(t, task.ID.IsZero())
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.False(t, task.Completed)
	assert.WithinDuration(t, time.Now().UTC(), task.CreatedAt, time.Minute)

	// The caller's slice is never mutated in place.
	assert.Len(t, current, 2)

	repo.AssertExpectations(t)
}

func TestServiceAddSanitizesInput(t *testing.T) {
	ownerID := bson.NewObjectID()

	repo := new(MockRepository)
	repo.On("SaveTasks", mock.Anything, ownerID, mock.Anything).Return(nil)

	service := NewService(repo, silentLogger)
	task, err := service.Add(context.Background(), ownerID, nil, AddTaskRequest{
		Title:       "<script>alert('x')</script>buy milk",
		Description: "  <b>2%</b>  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
}

func TestServiceAddSaveFailure(t *testing.T) {
	ownerID := bson.NewObjectID()

	repo := new(MockRepository)
	repo.On("SaveTasks", mock.Anything, ownerID, mock.Anything).Return(assert.AnError)

	service := NewService(repo, silentLogger)
	task, err := service.Add(context.Background(), ownerID, nil, AddTaskRequest{
		Title:       "buy milk",
		Description: "2%",
	})
	assert.ErrorIs(t, err, ErrSaveTasks)
	assert.Nil(t, task)
}

func TestServiceUpdate(t *testing.T) {
	ownerID := bson.NewObjectID()
	current := someTasks(3)
	target := current[1]

	t.Run("overwrites every field", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SaveTasks", mock.Anything, ownerID, mock.MatchedBy(func(list []Task) bool {
			return len(list) == 3 && list[1].Completed
		})).Return(nil)

		service := NewService(repo, silentLogger)
		task, err := service.Update(context.Background(), ownerID, target.ID, current, UpdateTaskRequest{
			Title:       "buy milk",
			Description: "whole",
			Completed:   true,
		})
		require.NoError(t, err)

		assert.Equal(t, target.ID, task.ID, "task keeps its id across updates")
		assert.Equal(t, "buy milk", task.Title)
		assert.Equal(t, "whole", task.Description)
		assert.True(t, task.Completed)
		assert.Equal(t, target.CreatedAt, task.CreatedAt, "createdAt is immutable")

		repo.AssertExpectations(t)
	})

	t.Run("omitted completed resets to false", func(t *testing.T) {
		done := current[1]
		done.Completed = true
		list := []Task{current[0], done, current[2]}

		repo := new(MockRepository)
		repo.On("SaveTasks", mock.Anything, ownerID, mock.Anything).Return(nil)

		service := NewService(repo, silentLogger)
		task, err := service.Update(context.Background(), ownerID, done.ID, list, UpdateTaskRequest{
			Title:       "buy milk",
			Description: "whole",
		})
		require.NoError(t, err)
		assert.False(t, task.Completed)
	})

	t.Run("unknown id fails without persisting", func(t *testing.T) {
		repo := new(MockRepository)

		service := NewService(repo, silentLogger)
		task, err := service.Update(context.Background(), ownerID, bson.NewObjectID(), current, UpdateTaskRequest{})
		assert.ErrorIs(t, err, ErrTaskNotFound)
		assert.Nil(t, task)
		repo.AssertNotCalled(t, "SaveTasks", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceDelete(t *testing.T) {
	ownerID := bson.NewObjectID()
	current := someTasks(3)
	target := current[1]

	t.Run("removes exactly the targeted task", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SaveTasks", mock.Anything, ownerID, mock.MatchedBy(func(list []Task) bool {
			if len(list) != 2 {
				return false
			}
			for _, task := range list {
				if task.ID == target.ID {
					return false
				}
			}
			// Insertion order of the survivors is preserved.
			return list[0].ID == current[0].ID && list[1].ID == current[2].ID
		})).Return(nil)

		service := NewService(repo, silentLogger)
		err := service.Delete(context.Background(), ownerID, target.ID, current)
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("unknown id fails without persisting", func(t *testing.T) {
		repo := new(MockRepository)

		service := NewService(repo, silentLogger)
		err := service.Delete(context.Background(), ownerID, bson.NewObjectID(), current)
		assert.ErrorIs(t, err, ErrTaskNotFound)
		repo.AssertNotCalled(t, "SaveTasks", mock.Anything, mock.Anything, mock.Anything)
	})
}
