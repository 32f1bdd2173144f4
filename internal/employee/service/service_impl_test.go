package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/employee/domain"
	"github.com/smallbiznis/hoteldesk/internal/employee/repository"
	"github.com/smallbiznis/hoteldesk/pkg/db/dbtest"
	"github.com/smallbiznis/hoteldesk/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEmployeeService(t *testing.T) domain.Service {
	t.Helper()
	db := dbtest.Open(t, &domain.Employee{})
	node, err := snowflake.NewNode(4)
	require.NoError(t, err)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: clock.NewFakeClock(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})
}

func TestCreateEmployeeDefaults(t *testing.T) {
	svc := newEmployeeService(t)
	ctx := context.Background()

	joined := time.Date(2023, 6, 12, 15, 30, 0, 0, time.UTC)
	emp, err := svc.Create(ctx, domain.Request{FullName: "Made Wirawan", Position: "Chef", Salary: decimal.NewFromInt(6500000), JoinedAt: &joined})
	require.NoError(t, err)
	assert.True(t, emp.Active)
	assert.Equal(t, time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC), *emp.JoinedAt)

	_, err = svc.Create(ctx, domain.Request{FullName: "X", Salary: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidSalary)
	_, err = svc.Create(ctx, domain.Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestListEmployeesActiveFilter(t *testing.T) {
	svc := newEmployeeService(t)
	ctx := context.Background()

	inactive := false
	_, err := svc.Create(ctx, domain.Request{FullName: "Ketut", Active: &inactive})
	require.NoError(t, err)
	active, err := svc.Create(ctx, domain.Request{FullName: "Komang"})
	require.NoError(t, err)

	yes := true
	res, err := svc.List(ctx, domain.ListRequest{Active: &yes, Page: pagination.Page{Page: 1, Limit: 10}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, active.ID, res.Items[0].ID)

	all, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

func TestUpdateAndDeleteEmployee(t *testing.T) {
	svc := newEmployeeService(t)
	ctx := context.Background()

	emp, err := svc.Create(ctx, domain.Request{FullName: "Wayan", Position: "Waiter"})
	require.NoError(t, err)

	position := "Head waiter"
	off := false
	updated, err := svc.Update(ctx, emp.ID.String(), domain.Patch{Position: &position, Active: &off})
	require.NoError(t, err)
	assert.Equal(t, "Head waiter", updated.Position)
	assert.False(t, updated.Active)

	require.NoError(t, svc.Delete(ctx, emp.ID.String()))
	_, err = svc.Get(ctx, emp.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Update(ctx, emp.ID.String(), domain.Patch{Position: &position})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
