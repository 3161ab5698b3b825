package cli

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/mykafka"
	"github.com/Skotchmaster/shop_demo/internal/service"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

// openStore connects and brings the schema up to date.
func openStore(ctx context.Context, url string) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	gdb, err := db.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, gdb, models.All()...); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}
	return gdb, nil
}

// newPublisher returns the Kafka producer when brokers are configured and a
// no-op publisher otherwise.
func newPublisher(brokers []string) (service.Publisher, func() error, error) {
	if len(brokers) == 0 {
		return service.NopPublisher{}, func() error { return nil }, nil
	}
	prod, err := mykafka.NewProducer(brokers)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	return prod, prod.Close, nil
}
