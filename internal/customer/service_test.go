package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
)

func TestService_Create(t *testing.T) {
	org := uuid.New()

	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: customer.CreateParams{OrganizationID: org, CompanyName: "  Acme Corp ", Email: "billing@acme.test"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						assert.Equal(t, "Acme Corp", c.CompanyName)
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingName",
			params:  customer.CreateParams{OrganizationID: org, CompanyName: " "},
			wantErr: customer.ErrMissingCompanyName,
		},
		{
			name:    "MissingOrganization",
			params:  customer.CreateParams{CompanyName: "Acme"},
			wantErr: customer.ErrMissingOrganization,
		},
		{
			name:   "RepoError",
			params: customer.CreateParams{OrganizationID: org, CompanyName: "Acme"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := customer.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	newName := "Globex Corporation"
	blank := "  "
	phone := "+34 600 000 000"

	type testCase struct {
		name      string
		params    customer.UpdateParams
		setupMock func(m *customer.MockRepository)
		want      *customer.Customer
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "PartialUpdate",
			params: customer.UpdateParams{CompanyName: &newName, Phone: &phone},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), id).
					Return(&customer.Customer{ID: id, CompanyName: "Globex", Email: "a@globex.test"}, nil)
				m.EXPECT().UpdateCustomer(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: &customer.Customer{ID: id, CompanyName: newName, Email: "a@globex.test", Phone: phone},
		},
		{
			name:   "BlankNameRejected",
			params: customer.UpdateParams{CompanyName: &blank},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), id).Return(&customer.Customer{ID: id, CompanyName: "Globex"}, nil)
			},
			wantErr: customer.ErrMissingCompanyName,
		},
		{
			name:   "NotFound",
			params: customer.UpdateParams{Phone: &phone},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().GetCustomer(gomock.Any(), id).Return(nil, customer.ErrNotFound)
			},
			wantErr: customer.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := customer.NewService(repo).Update(context.Background(), id, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ImportBatch(t *testing.T) {
	org := uuid.New()
	existing := &customer.Customer{ID: uuid.New(), OrganizationID: org, CompanyName: "Acme Corp", TaxID: "B12345678"}

	type testCase struct {
		name          string
		params        []customer.CreateParams
		setupMock     func(m *customer.MockRepository, itx *customer.MockImportTx)
		wantImported  int
		wantConflicts int
		wantSkipped   int
		wantErr       bool
	}

	tests := []testCase{
		{
			name: "NewAndConflicting",
			params: []customer.CreateParams{
				{CompanyName: "ACME Corporation", TaxID: "b12345678"},
				{CompanyName: "Initech"},
				{CompanyName: "initech"},
				{CompanyName: ""},
			},
			setupMock: func(m *customer.MockRepository, itx *customer.MockImportTx) {
				m.EXPECT().BeginImport(gomock.Any(), org).Return(itx, nil)
				itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Len(3)).Return([]*customer.Customer{existing}, nil)
				itx.EXPECT().
					CreateCustomers(gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, cs []*customer.Customer) error {
						assert.Equal(t, org, cs[0].OrganizationID)
						assert.Equal(t, "Initech", cs[0].CompanyName)
						return nil
					})
				itx.EXPECT().Commit().Return(nil)
				itx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
			wantImported:  1,
			wantConflicts: 1,
			wantSkipped:   2,
		},
		{
			name:        "NothingValid",
			params:      []customer.CreateParams{{CompanyName: " "}},
			wantSkipped: 1,
		},
		{
			name:   "CreateFails",
			params: []customer.CreateParams{{CompanyName: "Initech"}},
			setupMock: func(m *customer.MockRepository, itx *customer.MockImportTx) {
				m.EXPECT().BeginImport(gomock.Any(), org).Return(itx, nil)
				itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return(nil, nil)
				itx.EXPECT().CreateCustomers(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				itx.EXPECT().Rollback().Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			itx := customer.NewMockImportTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, itx)
			}

			got, err := customer.NewService(repo).ImportBatch(context.Background(), org, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Imported, tt.wantImported)
			assert.Len(t, got.Conflicts, tt.wantConflicts)
			assert.Equal(t, tt.wantSkipped, got.Skipped)
		})
	}
}

func TestNames(t *testing.T) {
	a := &customer.Customer{ID: uuid.New(), CompanyName: "Acme"}
	b := &customer.Customer{ID: uuid.New(), CompanyName: "Globex"}

	names := customer.Names([]*customer.Customer{a, b})

	assert.Equal(t, map[uuid.UUID]string{a.ID: "Acme", b.ID: "Globex"}, names)
}
