// Package pg provides context helpers that carry a pgx transaction through
// application layers, so repositories can take part in a transaction that a
// caller opened.
//
// The package holds WithTx and TxFromContext only. It does not open
// connection pools, run migrations, provide a health check or classify
// PostgreSQL errors; pools are created with pgx directly, and the
// healthchecks package wraps pool.Ping.
//
// # Transaction Management
//
// Use WithTx to attach a pgx.Tx to a context and TxFromContext to retrieve it:
//
//	// In your business logic where you need atomic DB + enqueue (outbox-style):
//	func createOrder(ctx context.Context, pool *pgxpool.Pool, enq *queue.Enqueuer, params CreateOrderParams) error {
//		tx, err := pool.Begin(ctx)
//		if err != nil {
//			return err
//		}
//		defer tx.Rollback(ctx) // Safe even after commit
//
//		ctx = pg.WithTx(ctx, tx)
//
//		// 1) Domain writes using tx
//		var orderID uuid.UUID
//		err = tx.QueryRow(ctx, "INSERT INTO orders (customer_id, total) VALUES ($1,$2) RETURNING id", params.CustomerID, params.Total).Scan(&orderID)
//		if err != nil {
//			return err
//		}
//
//		// 2) Enqueue task within the same transaction
//		type OrderCreated struct { ID uuid.UUID `json:"id"` }
//		if err := enq.Enqueue(ctx, OrderCreated{ID: orderID}, queue.WithQueue("orders")); err != nil {
//			return err
//		}
//
//		return tx.Commit(ctx)
//	}
//
// In your repository/storage implementation, check the context for a transaction:
//
//	type Storage struct {
//		pool *pgxpool.Pool
//	}
//
//	func (s *Storage) CreateTask(ctx context.Context, task *queue.Task) error {
//		const q = `INSERT INTO tasks (id, queue, task_type, task_name, payload, status, priority, retry_count, max_retries, scheduled_at, created_at)
//			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
//		if tx, ok := pg.TxFromContext(ctx); ok {
//			_, err := tx.Exec(ctx, q,
//				task.ID, task.Queue, task.TaskType, task.TaskName,
//				task.Payload, task.Status, task.Priority, task.RetryCount,
//				task.MaxRetries, task.ScheduledAt, task.CreatedAt,
//			)
//			return err
//		}
//		_, err := s.pool.Exec(ctx, q,
//			task.ID, task.Queue, task.TaskType, task.TaskName,
//			task.Payload, task.Status, task.Priority, task.RetryCount,
//			task.MaxRetries, task.ScheduledAt, task.CreatedAt,
//		)
//		return err
//	}
//
// Because workers run in separate
// sessions, they will not see uncommitted rows; once the transaction commits, the enqueued
// task becomes visible to workers.
package pg
