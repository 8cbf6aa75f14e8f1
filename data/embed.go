package data

import (
	_ "embed"
)

// MySQLSchema is the DDL for MySQL/MariaDB, used to seed test and dev containers
//
//go:embed mysql_schema.sql
var MySQLSchema string
