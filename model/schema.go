package model

import "github.com/programming-notes/active-record-intro-has-many-association-challenge/orm"

// Schema returns CREATE TABLE statements for people, dogs and ratings in
// the given dialect. Foreign keys are nullable.
func Schema(d orm.Dialect) []string {
	if d.Name() == orm.MySQL.Name() {
		return []string{
			`CREATE TABLE IF NOT EXISTS people (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				first_name VARCHAR(255) NOT NULL,
				last_name VARCHAR(255) NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS dogs (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				license VARCHAR(255) NOT NULL,
				age INT NOT NULL,
				breed VARCHAR(255) NOT NULL,
				owner_id BIGINT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS ratings (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				coolness INT NOT NULL,
				cuteness INT NOT NULL,
				judge_id BIGINT NULL,
				dog_id BIGINT NULL
			)`,
		}
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS people (
			id BIGSERIAL PRIMARY KEY,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dogs (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			license VARCHAR(255) NOT NULL,
			age INT NOT NULL,
			breed VARCHAR(255) NOT NULL,
			owner_id BIGINT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id BIGSERIAL PRIMARY KEY,
			coolness INT NOT NULL,
			cuteness INT NOT NULL,
			judge_id BIGINT NULL,
			dog_id BIGINT NULL
		)`,
	}
}
