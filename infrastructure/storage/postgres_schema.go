package storage

// Schema creates the tables used by the PostgreSQL backend. It matches the Supabase project tables.
const Schema = `
CREATE TABLE IF NOT EXISTS horses (
	id                    TEXT PRIMARY KEY,
	name_ja               TEXT,
	name_en               TEXT,
	birth_date            DATE,
	sex                   TEXT,
	sire_id               TEXT,
	dam_id                TEXT,
	maternal_grandsire_id TEXT,
	profile               JSONB,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS horse_relations (
	id            BIGSERIAL PRIMARY KEY,
	horse_a_id    TEXT NOT NULL,
	horse_b_id    TEXT NOT NULL,
	relation_type TEXT NOT NULL,
	children_ids  JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS horse_relations_pair_key ON horse_relations (horse_a_id, horse_b_id, relation_type);

CREATE TABLE IF NOT EXISTS races (
	race_id         TEXT PRIMARY KEY,
	race_date       DATE NOT NULL,
	track_name      TEXT,
	race_number     INTEGER,
	race_name       TEXT NOT NULL,
	grade           TEXT,
	distance        INTEGER,
	track_type      TEXT,
	track_direction TEXT,
	weather         TEXT,
	track_condition TEXT,
	start_time      TIME,
	total_horses    INTEGER,
	winning_time    TEXT,
	pace            TEXT,
	prize_1st       NUMERIC,
	race_class      TEXT,
	race_conditions TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS race_results (
	result_id       BIGSERIAL PRIMARY KEY,
	race_id         TEXT NOT NULL REFERENCES races (race_id) ON DELETE CASCADE,
	horse_id        TEXT NOT NULL REFERENCES horses (id),
	horse_name      TEXT,
	finish_position INTEGER,
	bracket_number  INTEGER,
	horse_number    INTEGER,
	age             INTEGER,
	sex             TEXT,
	jockey_weight   NUMERIC,
	jockey_id       TEXT,
	jockey_name     TEXT,
	trainer_region  TEXT,
	trainer_id      TEXT,
	trainer_name    TEXT,
	race_time       TEXT,
	time_diff       TEXT,
	passing_order   TEXT,
	last_3f         NUMERIC,
	odds            NUMERIC,
	popularity      INTEGER,
	horse_weight    INTEGER,
	weight_change   INTEGER,
	prize_money     NUMERIC,
	owner_id        TEXT,
	owner_name      TEXT,
	UNIQUE (race_id, horse_id)
);

CREATE TABLE IF NOT EXISTS jockeys (
	jockey_id TEXT PRIMARY KEY, name_ja TEXT, name_en TEXT, region TEXT, trainer_name TEXT, birthdate DATE, status TEXT,
	total_races INTEGER, wins INTEGER, seconds INTEGER, thirds INTEGER,
	win_rate NUMERIC, second_rate NUMERIC, show_rate NUMERIC, total_prize_money NUMERIC,
	yearly_stats JSONB, race_stats JSONB, track_stats JSONB
);

CREATE TABLE IF NOT EXISTS trainers (
	trainer_id TEXT PRIMARY KEY, name_ja TEXT, region TEXT, birthdate DATE, status TEXT,
	total_races INTEGER, wins INTEGER, seconds INTEGER, thirds INTEGER,
	win_rate NUMERIC, second_rate NUMERIC, show_rate NUMERIC, total_prize_money NUMERIC,
	yearly_stats JSONB, race_stats JSONB, track_stats JSONB
);

CREATE TABLE IF NOT EXISTS owners (
	owner_id TEXT PRIMARY KEY, name_ja TEXT, owner_type TEXT, status TEXT,
	total_horses INTEGER, active_horses INTEGER, retired_horses INTEGER, stakes_wins INTEGER, grade1_wins INTEGER,
	total_races INTEGER, wins INTEGER, seconds INTEGER, thirds INTEGER,
	win_rate NUMERIC, second_rate NUMERIC, show_rate NUMERIC, total_prize_money NUMERIC,
	yearly_stats JSONB, race_stats JSONB, track_stats JSONB
);

CREATE TABLE IF NOT EXISTS breeders (
	breeder_id TEXT PRIMARY KEY, name_ja TEXT, breeder_type TEXT, location TEXT,
	total_horses_produced INTEGER, active_horses INTEGER, retired_horses INTEGER, stakes_wins INTEGER,
	grade1_wins INTEGER, debut_horses INTEGER,
	total_races INTEGER, wins INTEGER, seconds INTEGER, thirds INTEGER,
	win_rate NUMERIC, second_rate NUMERIC, show_rate NUMERIC, total_prize_money NUMERIC,
	yearly_stats JSONB, race_stats JSONB, track_stats JSONB
);
`
