package tests

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"tasterealm/order-svc/internal/domain"
	"tasterealm/order-svc/internal/storage"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentList_LoadFailOpen(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		write bool
	}{
		{name: "missing key"},
		{name: "empty value", raw: "", write: true},
		{name: "malformed json", raw: "{not json", write: true},
		{name: "wrong shape", raw: `{"id":"x"}`, write: true},
		{name: "null", raw: "null", write: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if testCase.write {
				require.NoError(t, store.Set(context.Background(), "profile:p1:cart", testCase.raw))
			}

			items, err := storage.NewProfileStorage(store).Cart("p1").Load(context.Background())

			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestPersistentList_AppendAndKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	orders := storage.NewProfileStorage(store).Orders("p1")
	ctx := context.Background()

	require.NoError(t, orders.Append(ctx, domain.OrderRecord{OrderNumber: "TR-1-1"}))
	require.NoError(t, orders.Append(ctx, domain.OrderRecord{OrderNumber: "TR-2-2"}))

	loaded, err := orders.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "TR-1-1", loaded[0].OrderNumber)
	assert.Equal(t, "TR-2-2", loaded[1].OrderNumber)

	raw, ok, err := store.Get(ctx, "profile:p1:orders")
	require.NoError(t, err)
	require.True(t, ok)
	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "TR-1-1", decoded[0]["orderNumber"])
}

func TestPersistentList_SaveNil(t *testing.T) {
	store := storage.NewMemoryStore()
	list := storage.NewPersistentList[domain.CartItem](store, storage.CartKey)

	require.NoError(t, list.Save(context.Background(), nil))

	raw, ok, err := store.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := storage.NewRedisStore(client, time.Hour)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "profile:p1:cart")
	require.NoError(t, err)
	assert.False(t, ok)

	cart := storage.NewProfileStorage(store).Cart("p1")
	require.NoError(t, cart.Save(ctx, []domain.CartItem{{ID: "masala-chai", Name: "Masala Chai", Price: 49, Quantity: 2}}))

	assert.True(t, mr.Exists("profile:p1:cart"))
	assert.Equal(t, time.Hour, mr.TTL("profile:p1:cart"))

	items, err := cart.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	mr.SetError("LOADING")
	_, err = cart.Load(ctx)
	assert.Error(t, err)
}

func TestPostgresRepository_Store(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)
	ctx := context.Background()

	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM profile_storage WHERE key = $1")).
		WithArgs("profile:p1:cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := repo.Get(ctx, "profile:p1:cart")
	require.NoError(t, err)
	assert.False(t, ok)

	sqlMock.ExpectExec("INSERT INTO profile_storage").
		WithArgs("profile:p1:cart", `[{"id":"x"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(ctx, "profile:p1:cart", `[{"id":"x"}]`))

	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM profile_storage WHERE key = $1")).
		WithArgs("profile:p1:cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"x"}]`))

	value, ok, err := repo.Get(ctx, "profile:p1:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"x"}]`, value)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresRepository_Menu(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)
	ctx := context.Background()

	columns := []string{"id", "name", "description", "price", "image", "category"}
	sqlMock.ExpectQuery("SELECT id, name, COALESCE\\(description, ''\\), price").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("paneer-tikka", "Paneer Tikka", "Smoky cottage cheese", "249.00", "assests/menu/paneer-tikka.jpg", "veg").
			AddRow("masala-chai", "Masala Chai", "", "49.00", "", "beverages"))

	items, err := repo.ListMenu(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 249.0, items[0].Price)
	assert.Equal(t, domain.CategoryBeverages, items[1].Category)

	sqlMock.ExpectQuery("FROM menu_items\\s+WHERE id = \\$1").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetMenuItem(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO menu_items").
		WithArgs("paneer-tikka", "Paneer Tikka", "", 249.0, "", "veg").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	err = repo.SeedMenu(ctx, []domain.MenuItem{{ID: "paneer-tikka", Name: "Paneer Tikka", Price: 249, Category: domain.CategoryVeg}})
	require.NoError(t, err)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO menu_items").WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	err = repo.SeedMenu(ctx, []domain.MenuItem{{ID: "broken"}})
	assert.ErrorIs(t, err, assert.AnError)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestPostgresRepository_EnsureSchema(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectExec("CREATE TABLE IF NOT EXISTS profile_storage").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("CREATE TABLE IF NOT EXISTS menu_items").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, storage.NewPostgresRepository(db).EnsureSchema(context.Background()))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestYAMLMenu(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantIDs []string
		wantErr bool
	}{
		{
			name: "valid",
			data: `
items:
  - id: garlic-naan
    name: Garlic Naan
    price: 59
    category: breads
  - id: mango-lassi
    name: Mango Lassi
    price: 89
    image: assests/menu/mango-lassi.jpg
    category: beverages
`,
			wantIDs: []string{"garlic-naan", "mango-lassi"},
		},
		{
			name:    "missing id",
			data:    "items:\n  - name: Nameless\n",
			wantErr: true,
		},
		{
			name:    "duplicate id",
			data:    "items:\n  - id: a\n  - id: a\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			data:    "items: [",
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			menu, err := storage.ParseYAMLMenu([]byte(testCase.data))

			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			items, err := menu.ListMenu(context.Background())
			require.NoError(t, err)
			ids := []string{}
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, testCase.wantIDs, ids)

			item, err := menu.GetMenuItem(context.Background(), "mango-lassi")
			require.NoError(t, err)
			assert.Equal(t, domain.CategoryBeverages, item.Category)

			_, err = menu.GetMenuItem(context.Background(), "nope")
			assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
		})
	}
}

func TestLoadYAMLMenu_SeedFile(t *testing.T) {
	menu, err := storage.LoadYAMLMenu(filepath.Join("..", "..", "..", "config", "menu.yaml"))
	require.NoError(t, err)

	items, err := menu.ListMenu(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 12)

	_, err = storage.LoadYAMLMenu(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	writer := &recordingWriter{}
	publisher := storage.NewKafkaPublisher(writer)

	event := domain.OrderEvent{
		Type:        domain.OrderPlacedEvent,
		OrderNumber: "TR-1710009005123-42",
		ProfileID:   "p1",
		OrderType:   domain.OrderTypeTakeaway,
		Payment:     domain.PaymentCard,
		Total:       211.45,
		Items:       []domain.OrderEventItem{{ID: "paneer-tikka", Name: "Paneer Tikka", Quantity: 1, Price: 249}},
		Timestamp:   fixedNow,
	}
	require.NoError(t, publisher.PublishOrder(context.Background(), event))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "TR-1710009005123-42", string(writer.messages[0].Key))

	var decoded domain.OrderEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, event.OrderNumber, decoded.OrderNumber)
	assert.Equal(t, "paneer-tikka", decoded.Items[0].ID)
	assert.True(t, decoded.Timestamp.Equal(fixedNow))

	writer.err = assert.AnError
	assert.ErrorIs(t, publisher.PublishOrder(context.Background(), event), assert.AnError)
}
