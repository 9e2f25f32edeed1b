package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/service"
	"cheatsheets/internal/storage"
	storage_mocks "cheatsheets/internal/storage/mocks"
)

func testContext() context.Context {
	return context.Background()
}

func TestCheatsheetService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storage_mocks.NewMockCheatsheetStore(ctrl)
	svc := service.NewCheatsheetService(store, nil)

	tests := []struct {
		name      string
		mockSetup func()
		wantLen   int
		wantErr   error
	}{
		{
			name: "records",
			mockSetup: func() {
				store.EXPECT().ListMeta(gomock.Any()).
					Return([]cheatsheet.Meta{{ID: "bash"}, {ID: "git"}}, nil)
			},
			wantLen: 2,
		},
		{
			name: "nil from store becomes empty",
			mockSetup: func() {
				store.EXPECT().ListMeta(gomock.Any()).Return(nil, nil)
			},
			wantLen: 0,
		},
		{
			name: "store error",
			mockSetup: func() {
				store.EXPECT().ListMeta(gomock.Any()).Return(nil, errors.New("disk I/O error"))
			},
			wantErr: service.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			got, err := svc.List(testContext())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("List() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("List() unexpected error: %v", err)
			}
			if got == nil || len(got) != tt.wantLen {
				t.Errorf("List() = %#v, want %d records", got, tt.wantLen)
			}
		})
	}
}

func TestCheatsheetService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storage_mocks.NewMockCheatsheetStore(ctrl)
	svc := service.NewCheatsheetService(store, nil)

	tests := []struct {
		name      string
		id        string
		mockSetup func()
		wantErr   error
	}{
		{
			name: "found",
			id:   "rust",
			mockSetup: func() {
				store.EXPECT().GetByID(gomock.Any(), "rust").
					Return(&cheatsheet.Cheatsheet{ID: "rust", Title: "Rust"}, nil)
			},
		},
		{
			name: "id is trimmed",
			id:   "  rust ",
			mockSetup: func() {
				store.EXPECT().GetByID(gomock.Any(), "rust").
					Return(&cheatsheet.Cheatsheet{ID: "rust", Title: "Rust"}, nil)
			},
		},
		{
			name:      "empty id",
			id:        " ",
			mockSetup: func() {},
			wantErr:   service.ErrInvalidInput,
		},
		{
			name: "not found",
			id:   "cobol",
			mockSetup: func() {
				store.EXPECT().GetByID(gomock.Any(), "cobol").Return(nil, storage.ErrNotFound)
			},
			wantErr: service.ErrNotFound,
		},
		{
			name: "store error",
			id:   "rust",
			mockSetup: func() {
				store.EXPECT().GetByID(gomock.Any(), "rust").Return(nil, errors.New("database is locked"))
			},
			wantErr: service.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			got, err := svc.Get(testContext(), tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if got.ID != "rust" {
				t.Errorf("Get() ID = %v, want rust", got.ID)
			}
		})
	}
}

func TestCheatsheetService_GetSection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storage_mocks.NewMockCheatsheetStore(ctrl)
	svc := service.NewCheatsheetService(store, nil)

	sheet := &cheatsheet.Cheatsheet{
		ID:    "git",
		Title: "Git",
		Sections: []cheatsheet.Section{
			{Title: "Getting Started", Content: "git init\n"},
			{Title: "Branches", Content: "git branch\n"},
		},
	}
	store.EXPECT().GetByID(gomock.Any(), "git").Return(sheet, nil).Times(2)

	got, err := svc.GetSection(testContext(), "git", "  branches")
	if err != nil {
		t.Fatalf("GetSection() unexpected error: %v", err)
	}
	if got.Content != "git branch\n" {
		t.Errorf("GetSection() content = %q, want git branch", got.Content)
	}

	if _, err := svc.GetSection(testContext(), "git", "Tags"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("GetSection() missing section error = %v, want ErrNotFound", err)
	}
}

func TestCheatsheetService_LatestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storage_mocks.NewMockCheatsheetStore(ctrl)
	runs := storage_mocks.NewMockRunStore(ctrl)

	if _, err := service.NewCheatsheetService(store, nil).LatestRun(testContext()); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("LatestRun() without run store error = %v, want ErrNotFound", err)
	}

	svc := service.NewCheatsheetService(store, runs)

	runs.EXPECT().Latest(gomock.Any()).Return(&storage.IngestRun{ID: "run-1"}, nil)
	run, err := svc.LatestRun(testContext())
	if err != nil || run.ID != "run-1" {
		t.Errorf("LatestRun() = %v, %v, want run-1", run, err)
	}

	runs.EXPECT().Latest(gomock.Any()).Return(nil, storage.ErrNotFound)
	if _, err := svc.LatestRun(testContext()); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("LatestRun() error = %v, want ErrNotFound", err)
	}
}
