package membershiprepo_test

import (
	"context"
	"testing"
	"time"

	"epharmacy/internal/adapters/out/postgres/membershiprepo"
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/pharmacy"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MembershipRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *membershiprepo.GormMembershipRepository
}

func (suite *MembershipRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&membershiprepo.MembershipDTO{}))
	suite.repository = membershiprepo.NewGormMembershipRepository(db)
}

func (suite *MembershipRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pharmacy_memberships").Error)
}

func (suite *MembershipRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MembershipRepositoryIntegrationTestSuite) TestExistsActive() {
	ctx := context.Background()
	pharmacyID, userID, formerID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	active, err := pharmacy.NewMembership(kernel.NewUUID(), pharmacyID, userID, pharmacy.RolePharmacist)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, active))

	former, err := pharmacy.NewMembership(kernel.NewUUID(), pharmacyID, formerID, pharmacy.RoleOwner)
	suite.Require().NoError(err)
	former.Deactivate()
	suite.Require().NoError(suite.repository.Add(ctx, former))

	tests := []struct {
		name       string
		pharmacyID kernel.UUID
		userID     kernel.UUID
		want       bool
	}{
		{"active member", pharmacyID, userID, true},
		{"deactivated member", pharmacyID, formerID, false},
		{"member of another pharmacy", kernel.NewUUID(), userID, false},
		{"stranger", pharmacyID, kernel.NewUUID(), false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			ok, existsErr := suite.repository.ExistsActive(ctx, tt.pharmacyID, tt.userID)
			suite.Require().NoError(existsErr)
			suite.Equal(tt.want, ok)
		})
	}
}

func (suite *MembershipRepositoryIntegrationTestSuite) TestAdd_DuplicateMembership() {
	ctx := context.Background()
	pharmacyID, userID := kernel.NewUUID(), kernel.NewUUID()

	first, err := pharmacy.NewMembership(kernel.NewUUID(), pharmacyID, userID, pharmacy.RolePharmacist)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := pharmacy.NewMembership(kernel.NewUUID(), pharmacyID, userID, pharmacy.RoleOwner)
	suite.Require().NoError(err)
	suite.Require().Error(suite.repository.Add(ctx, second))
}

func TestMembershipRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipRepositoryIntegrationTestSuite))
}
