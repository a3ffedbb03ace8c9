package queries_test

import (
	"context"
	"time"

	postgres_adapter "epharmacy/internal/adapters/out/postgres"
	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/core/domain/model/pharmacy"
	"epharmacy/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ordersQuerySuite starts PostgreSQL and seeds orders through the repositories.
type ordersQuerySuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	uow       ports.UnitOfWorkFactory
}

func (suite *ordersQuerySuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.uow = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *ordersQuerySuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ordersQuerySuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE prescriptions, order_items, orders, inventory_items, pharmacy_memberships, pharmacies",
	).Error
	suite.Require().NoError(err)
}

// seedOrder stores an order with two lines (3 x 35.00 and 1 x 20.50 INR) in
// the given status, created at createdAt.
func (suite *ordersQuerySuite) seedOrder(
	customerID, pharmacyID kernel.UUID,
	status order.Status,
	createdAt time.Time,
	withPrescription bool,
) *order.Order {
	address, err := kernel.NewAddress("12 MG Road", "Flat 4", "Bengaluru", "Karnataka", "India", "560001")
	suite.Require().NoError(err)
	location, err := kernel.NewGeoCoordinate(12.9716, 77.5946)
	suite.Require().NoError(err)

	var prescription *order.Prescription
	if withPrescription {
		prescription, err = order.RestorePrescription(kernel.NewUUID(), "rx.pdf", "prescriptions/x/rx.pdf",
			order.PrescriptionInReview, "waiting for doctor")
		suite.Require().NoError(err)
	}

	paracetamol, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Paracetamol", 3, suite.inr("35.00"), false)
	suite.Require().NoError(err)
	amoxicillin, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Amoxicillin", 1, suite.inr("20.50"), true)
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(order.OrderState{
		ID:               kernel.NewUUID(),
		OrderNumber:      kernel.NewUUID(),
		CustomerID:       customerID,
		PharmacyID:       pharmacyID,
		DeliveryAddress:  address,
		DeliveryLocation: location,
		PaymentMethod:    order.CashOnDelivery,
		PaymentStatus:    order.PaymentPending,
		Status:           status,
		Items:            []*order.Item{paracetamol, amoxicillin},
		Prescription:     prescription,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.uow.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *ordersQuerySuite) seedMembership(pharmacyID, userID kernel.UUID, active bool) {
	m, err := pharmacy.RestoreMembership(kernel.NewUUID(), pharmacyID, userID, pharmacy.RolePharmacist, active)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.uow.Create().MembershipRepository().Add(context.Background(), m))
}

func (suite *ordersQuerySuite) inr(amount string) kernel.Money {
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), "INR")
	suite.Require().NoError(err)
	return m
}
