package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"

	oai "github.com/slsfi/arkiva-oai"
	"github.com/slsfi/arkiva-oai/internal/mapping"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Cache    Cache    `yaml:"cache"`
	Archive  Archive  `yaml:"archive"`
	Library  *Library `yaml:"library"`
}

type Server struct {
	Listen string `yaml:"listen"`
	// BaseURL overrides the request element's endpoint URL. When
	// empty, it is derived from the incoming request.
	BaseURL       string `yaml:"baseUrl"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Database struct {
	Dialect string `yaml:"dialect"` // postgres, mysql
	// Dsn for mysql must include parseTime=true so date columns scan
	// as time values.
	Dsn string `yaml:"dsn"`
}

type Cache struct {
	Backend       string `yaml:"backend"` // none, memory, redis, memcached
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	TTLSeconds    int    `yaml:"ttlSeconds"`
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type Archive struct {
	// AccessBase prefixes derivate file paths in record links.
	AccessBase string `yaml:"accessBase"`
}

// Library configures the optional library endpoint, which serves a
// single flat table described entirely here.
type Library struct {
	Database   Database      `yaml:"database"`
	Table      string        `yaml:"table"`
	IDColumn   string        `yaml:"idColumn"`
	DateColumn string        `yaml:"dateColumn"`
	Repository Repository    `yaml:"repository"`
	Sets       yaml.MapSlice `yaml:"sets"`       // setSpec: setName
	Namespaces yaml.MapSlice `yaml:"namespaces"` // prefix: uri
	RecordMap  yaml.MapSlice `yaml:"recordMap"`  // column: prefixed tag
}

type Repository struct {
	Name            string `yaml:"name"`
	AdminEmail      string `yaml:"adminEmail"`
	ProtocolVersion string `yaml:"protocolVersion"`
	DeletedRecord   string `yaml:"deletedRecord"`
	Granularity     string `yaml:"granularity"`
}

// Descriptor converts the library section into a mapping descriptor.
// MapSlice keeps the YAML order, which fixes both the element order of
// records and the order of sets in ListSets.
func (l *Library) Descriptor() mapping.LibraryDescriptor {
	desc := mapping.LibraryDescriptor{
		Identity: oai.Identity{
			Name:            l.Repository.Name,
			AdminEmail:      l.Repository.AdminEmail,
			ProtocolVersion: l.Repository.ProtocolVersion,
			DeletedRecord:   l.Repository.DeletedRecord,
			Granularity:     l.Repository.Granularity,
		},
		IDColumn:   l.IDColumn,
		DateColumn: l.DateColumn,
	}
	for _, item := range l.Sets {
		desc.Sets = append(desc.Sets, oai.Set{Spec: str(item.Key), Name: str(item.Value)})
	}
	for _, item := range l.Namespaces {
		desc.Namespaces = append(desc.Namespaces, oai.NS{Prefix: str(item.Key), URI: str(item.Value)})
	}
	for _, item := range l.RecordMap {
		desc.RecordMap = append(desc.RecordMap, mapping.Pair{Column: str(item.Key), Tag: str(item.Value)})
	}
	return desc
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Database.Dialect == "" {
		config.Database.Dialect = "postgres"
	}
	if config.Archive.AccessBase == "" {
		config.Archive.AccessBase = "http://api.sls.fi/accessfiles/"
	}
	if config.Cache.Backend == "" {
		config.Cache.Backend = "none"
	}
	if config.Cache.TTLSeconds == 0 {
		config.Cache.TTLSeconds = 300
	}
	if config.Library != nil && config.Library.Database.Dialect == "" {
		config.Library.Database.Dialect = config.Database.Dialect
	}

	return config, nil
}
