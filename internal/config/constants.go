package config

const DefaultDatabasePath = "./library.db"
