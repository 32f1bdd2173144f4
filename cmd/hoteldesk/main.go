package main

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/hoteldesk/internal/clock"
	"github.com/smallbiznis/hoteldesk/internal/config"
	"github.com/smallbiznis/hoteldesk/internal/migration"
	"github.com/smallbiznis/hoteldesk/internal/observability"
	"github.com/smallbiznis/hoteldesk/internal/seed"
	"github.com/smallbiznis/hoteldesk/internal/server"
	"github.com/smallbiznis/hoteldesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		seed.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

// RegisterSnowflake builds the id generator. SNOWFLAKE_NODE must differ per
// running instance.
func RegisterSnowflake() (*snowflake.Node, error) {
	nodeID := int64(1)
	if raw := os.Getenv("SNOWFLAKE_NODE"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		nodeID = parsed
	}
	return snowflake.NewNode(nodeID)
}
