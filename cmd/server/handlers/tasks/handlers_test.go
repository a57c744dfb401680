package tasks

import (
	"context"
	"testing"
	"time"

	"tasknest/cmd/server/middlewares"
	"tasknest/cmd/server/testutil"
	"tasknest/internal/services/auth"
	"tasknest/internal/services/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockService mocks the tasks service
type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, ownerID bson.ObjectID, current []tasks.Task, req tasks.AddTaskRequest) (*tasks.Task, error) {
	args := m.Called(ctx, ownerID, current, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasks.Task), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, ownerID, taskID bson.ObjectID, current []tasks.Task, req tasks.UpdateTaskRequest) (*tasks.Task, error) {
	args := m.Called(ctx, ownerID, taskID, current, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tasks.Task), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, ownerID, taskID bson.ObjectID, current []tasks.Task) error {
	args := m.Called(ctx, ownerID, taskID, current)
	return args.Error(0)
}

// MockUsersRepo backs the principal middleware in these tests.
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockUsersRepo) FindByID(ctx context.Context, id bson.ObjectID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

type tasksTestSetup struct {
	MockService *MockService
	UsersRepo   *MockUsersRepo
	App         *fiber.App
	User        *auth.User
	Token       string
}

// setupTasksTest wires the real principal middleware (signature check plus
// per-request user lookup) in front of the task handlers, exactly as the
// router does.
func setupTasksTest(t *testing.T) *tasksTestSetup {
	t.Helper()

	mockService := &MockService{}
	usersRepo := &MockUsersRepo{}
	app := testutil.CreateTestApp(t)
	v := testutil.CreateTestValidator(t)
	cfg := testutil.TestConfig()

	h := NewHandlers(mockService, v)
	principal := middlewares.Principal(cfg, usersRepo)

	user := app.Group("/user")
	user.Get("/tasks", principal, h.List)
	user.Post("/add-task", principal, h.Add)
	user.Put("/update-task/:taskId", principal, h.Update)
	user.Delete("/delete-task/:taskId", principal, h.Delete)

	existing := tasks.Task{
		ID:          bson.NewObjectID(),
		Title:       "buy milk",
		Description: "2%",
		CreatedAt:   time.Now().UTC(),
	}
	testUser := &auth.User{
		ID:       bson.NewObjectID(),
		UserName: "alice",
		Email:    "a@x.com",
		Tasks:    []tasks.Task{existing},
	}

	token, err := testutil.CreateTestJWT(testUser.ID.Hex(), []byte(cfg.JWTSecret), time.Hour)
	require.NoError(t, err)

	return &tasksTestSetup{
		MockService: mockService,
		UsersRepo:   usersRepo,
		App:         app,
		User:        testUser,
		Token:       token,
	}
}

func TestTaskEndpointsRejectMissingToken(t *testing.T) {
	setup := setupTasksTest(t)

	endpoints := []struct {
		method string
		url    string
	}{
		{"GET", "/user/tasks"},
		{"POST", "/user/add-task"},
		{"PUT", "/user/update-task/" + bson.NewObjectID().Hex()},
		{"DELETE", "/user/delete-task/" + bson.NewObjectID().Hex()},
	}

	for _, e := range endpoints {
		t.Run(e.method+" "+e.url, func(t *testing.T) {
			req := testutil.CreateJSONRequest(e.method, e.url, map[string]any{"title": "x", "description": "y"})
			resp, err := setup.App.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)

			got := testutil.DecodeJSON(t, resp)
			assert.Equal(t, false, got["success"])
		})
	}

	// No request made it past the gate.
	setup.MockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	setup.UsersRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestTaskEndpointsRejectMalformedHeader(t *testing.T) {
	setup := setupTasksTest(t)

	req := testutil.CreateJSONRequest("GET", "/user/tasks", nil)
	req.Header.Set("Authorization", "Token abcdef")
	resp, err := setup.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestTaskEndpointsRejectDeletedUser(t *testing.T) {
	setup := setupTasksTest(t)

	// Token verifies but the account is gone.
	setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(nil, auth.ErrUserNotFound).Once()

	req := testutil.CreateAuthenticatedRequest("GET", "/user/tasks", nil, setup.Token)
	resp, err := setup.App.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	got := testutil.DecodeJSON(t, resp)
	assert.Equal(t, false, got["success"])
}

func TestListTasks(t *testing.T) {
	setup := setupTasksTest(t)
	setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

	req := testutil.CreateAuthenticatedRequest("GET", "/user/tasks", nil, setup.Token)
	resp, err := setup.App.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	got := testutil.DecodeJSON(t, resp)
	assert.Equal(t, true, got["success"])
	list, ok := got["tasks"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestAddTask(t *testing.T) {
	t.Run("creates a task for the token's own user", func(t *testing.T) {
		setup := setupTasksTest(t)
		setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

		created := &tasks.Task{
			ID:          bson.NewObjectID(),
			Title:       "buy milk",
			Description: "2%",
			CreatedAt:   time.Now().UTC(),
		}
		// The handler must pass the principal's own id and list, nothing else.
		setup.MockService.On("Add", mock.Anything, setup.User.ID, setup.User.Tasks, tasks.AddTaskRequest{
			Title:       "buy milk",
			Description: "2%",
		}).Return(created, nil).Once()

		req := testutil.CreateAuthenticatedRequest("POST", "/user/add-task", map[string]any{
			"title":       "buy milk",
			"description": "2%",
		}, setup.Token)
		resp, err := setup.App.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 201, resp.StatusCode)

		got := testutil.DecodeJSON(t, resp)
		assert.Equal(t, true, got["success"])
		taskBody, ok := got["task"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "buy milk", taskBody["title"])
		assert.Equal(t, false, taskBody["completed"])

		setup.MockService.AssertExpectations(t)
	})

	t.Run("empty title or description is rejected before the service", func(t *testing.T) {
		for _, body := range []map[string]any{
			{"description": "2%"},
			{"title": "buy milk"},
			{"title": "", "description": ""},
		} {
			setup := setupTasksTest(t)
			setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

			req := testutil.CreateAuthenticatedRequest("POST", "/user/add-task", body, setup.Token)
			resp, err := setup.App.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)

			setup.MockService.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		setup := setupTasksTest(t)
		setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

		target := setup.User.Tasks[0]
		updated := target
		updated.Description = "whole"
		updated.Completed = true

		setup.MockService.On("Update", mock.Anything, setup.User.ID, target.ID, setup.User.Tasks, tasks.UpdateTaskRequest{
			Title:       "buy milk",
			Description: "whole",
			Completed:   true,
		}).Return(&updated, nil).Once()

		req := testutil.CreateAuthenticatedRequest("PUT", "/user/update-task/"+target.ID.Hex(), map[string]any{
			"title":       "buy milk",
			"description": "whole",
			"completed":   true,
		}, setup.Token)
		resp, err := setup.App.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		got := testutil.DecodeJSON(t, resp)
		taskBody := got["task"].(map[string]any)
		assert.Equal(t, true, taskBody["completed"])
		assert.Equal(t, "whole", taskBody["description"])
		assert.Equal(t, target.ID.Hex(), taskBody["id"])

		setup.MockService.AssertExpectations(t)
	})

	t.Run("unknown task id yields 404", func(t *testing.T) {
		setup := setupTasksTest(t)
		setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

		unknown := bson.NewObjectID()
		setup.MockService.On("Update", mock.Anything, setup.User.ID, unknown, setup.User.Tasks, mock.AnythingOfType("tasks.UpdateTaskRequest")).
			Return(nil, tasks.ErrTaskNotFound).Once()

		req := testutil.CreateAuthenticatedRequest("PUT", "/user/update-task/"+unknown.Hex(), map[string]any{
			"title": "x", "description": "y",
		}, setup.Token)
		resp, err := setup.App.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("malformed task id yields 404 without a service call", func(t *testing.T) {
		setup := setupTasksTest(t)
		setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

		req := testutil.CreateAuthenticatedRequest("PUT", "/user/update-task/not-an-id", map[string]any{
			"title": "x", "description": "y",
		}, setup.Token)
		resp, err := setup.App.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		setup.MockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteTask(t *testing.T) {
	setup := setupTasksTest(t)
	setup.UsersRepo.On("FindByID", mock.Anything, setup.User.ID).Return(setup.User, nil).Once()

	target := setup.User.Tasks[0]
	setup.MockService.On("Delete", mock.Anything, setup.User.ID, target.ID, setup.User.Tasks).Return(nil).Once()

	req := testutil.CreateAuthenticatedRequest("DELETE", "/user/delete-task/"+target.ID.Hex(), nil, setup.Token)
	resp, err := setup.App.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	got := testutil.DecodeJSON(t, resp)
	assert.Equal(t, true, got["success"])

	setup.MockService.AssertExpectations(t)
}
