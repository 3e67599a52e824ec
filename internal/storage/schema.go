// ABOUTME: SQL schema definition for the ketomate database.
// ABOUTME: Meals, weight history, profile, tasks, notes, and gamification stats.
package storage

const schema = `
CREATE TABLE IF NOT EXISTS meals (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT,
    meal_type TEXT NOT NULL,
    foods TEXT,
    carbs REAL NOT NULL DEFAULT 0,
    protein REAL NOT NULL DEFAULT 0,
    fat REAL NOT NULL DEFAULT 0,
    calories REAL NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS weight_history (
    id TEXT PRIMARY KEY,
    weight_kg REAL NOT NULL,
    notes TEXT,
    recorded_at DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_profiles (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    profile TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    notes TEXT,
    completed INTEGER NOT NULL DEFAULT 0,
    effort TEXT NOT NULL,
    pomodoro_count INTEGER NOT NULL DEFAULT 0,
    pomodoro_active INTEGER NOT NULL DEFAULT 0,
    pomodoro_end_time DATETIME,
    date TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS stats (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    stats TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_date ON meals(date);
CREATE INDEX IF NOT EXISTS idx_weight_history_date ON weight_history(recorded_at);
CREATE INDEX IF NOT EXISTS idx_tasks_date ON tasks(date);
`

// initSchema creates all tables and indexes.
func (d *DB) initSchema() error {
	_, err := d.db.Exec(schema)
	return err
}
