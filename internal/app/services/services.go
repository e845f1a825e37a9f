package services

// Services defined in this package:
// - StudentService: create, read, update and delete of student records
