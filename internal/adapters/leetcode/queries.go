package leetcode

// The upstream contract is bit-exact on field sets: changing either query
// changes what the GraphQL endpoint returns and silently breaks decoding.

const recentAcceptedQuery = `
      query recentAC($username: String!, $limit: Int!) {
        recentAcSubmissionList(username: $username, limit: $limit) {
          id
          title
          titleSlug
          timestamp
        }
      }
    `

const contestHistoryQuery = `
    query getUserContestHistory($username: String!) {
      userContestRankingHistory(username: $username) {
        attended
        trendDirection
        problemsSolved
        totalProblems
        finishTimeInSeconds
        rating
        ranking
        contest {
          title
          startTime
          titleSlug
        }
      }
    }
  `
