package services

// Services defined in this package:
// - AuthService: registration, login and refresh token rotation
// - UserService: account administration, profiles and pictures
// - ProgramService: program catalog management
// - CourseService: course catalog management
// - AllocationService: lecturer course allocations
// - AttendanceService: roster loading and attendance marking
