// internal/repository/mock_gen.go
package repository

//go:generate mockgen -typed -source=./query_audit_log.go -destination=../mocks/mock_query_audit_log_repository.go -package=mocks QueryAuditLogRepositoryIface
