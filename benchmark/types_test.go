package benchmark

type Config struct {
	Host string
	Port int
}

type Logger struct {
	Level string
}

type Database struct {
	Config *Config
	Logger *Logger
}

type Cache struct {
	Logger *Logger
}

type Repository struct {
	DB    *Database `dijay:""`
	Cache *Cache    `dijay:""`
}

type Service struct {
	Repo   *Repository
	Logger *Logger
}

func NewDatabase(cfg *Config, logger *Logger) *Database {
	return &Database{Config: cfg, Logger: logger}
}

func NewCache(logger *Logger) *Cache {
	return &Cache{Logger: logger}
}

func NewService(repo *Repository, logger *Logger) *Service {
	return &Service{Repo: repo, Logger: logger}
}
